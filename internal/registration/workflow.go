// Package registration implements the patient registration desk: listing,
// searching, registering and exporting patients.
package registration

import (
	"context"
	"errors"
	"strings"
	"time"

	"klinik-sentosa-server/internal/models"
	"klinik-sentosa-server/internal/notify"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	listFailedMessage = "Gagal memuat data pasien"
	createdMessage    = "Data pasien berhasil ditambahkan"
	emptyMessage      = "Belum ada data pasien"
)

// Store is the patients table.
type Store interface {
	List(ctx context.Context) ([]models.Patient, error)
	Insert(ctx context.Context, patient *models.Patient) error
}

// Row is one line of the patient table.
type Row struct {
	models.Patient
	BirthDateDisplay string `json:"tanggal_lahir_display"`
}

// Page is the state of the registration page after an operation.
type Page struct {
	Patients     []Row             `json:"patients"`
	Search       string            `json:"search"`
	EmptyMessage string            `json:"empty_message,omitempty"`
	ModalOpen    bool              `json:"modal_open"`
	Form         PatientForm       `json:"form"`
	FieldErrors  map[string]string `json:"field_errors,omitempty"`
	Notices      []notify.Notice   `json:"-"`
}

// Workflow runs the registration operations.
type Workflow struct {
	store    Store
	validate *validator.Validate
	logger   *zap.Logger
}

func NewWorkflow(store Store, logger *zap.Logger) *Workflow {
	return &Workflow{store: store, validate: newValidator(), logger: logger}
}

// ListPatients returns all patients, newest first.
func (w *Workflow) ListPatients(ctx context.Context) ([]models.Patient, error) {
	return w.store.List(ctx)
}

// Load builds the page for a search term. A store failure yields an empty
// table and a notice.
func (w *Workflow) Load(ctx context.Context, term string) Page {
	page := Page{Search: term}
	patients, err := w.ListPatients(ctx)
	if err != nil {
		w.logger.Error("failed to list patients", zap.Error(err))
		page.Notices = append(page.Notices, notify.Error(listFailedMessage))
	}
	page.Patients = rows(Filter(patients, term))
	if len(page.Patients) == 0 {
		page.EmptyMessage = emptyMessage
	}
	return page
}

// Filter keeps patients whose name contains term ignoring case, or whose
// phone contains term as typed. An empty term keeps everything.
func Filter(patients []models.Patient, term string) []models.Patient {
	if term == "" {
		return patients
	}
	lower := strings.ToLower(term)
	out := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.FullName), lower) || strings.Contains(p.Phone, term) {
			out = append(out, p)
		}
	}
	return out
}

// CreatePatient validates the form, inserts the patient with creatorID as
// its creator and returns the refreshed page. On failure the page keeps the
// modal open with the submitted form.
func (w *Workflow) CreatePatient(ctx context.Context, creatorID string, form PatientForm) (Page, error) {
	failed := Page{ModalOpen: true, Form: form}

	patient, err := form.validate(w.validate)
	if err != nil {
		var fe *FormError
		if errors.As(err, &fe) {
			failed.FieldErrors = fe.Fields
		}
		failed.Notices = []notify.Notice{notify.Error(err.Error())}
		return failed, err
	}
	if creatorID != "" {
		patient.CreatedBy = &creatorID
	}

	if err := w.store.Insert(ctx, patient); err != nil {
		w.logger.Error("failed to insert patient", zap.Error(err))
		failed.Notices = []notify.Notice{notify.Error(err.Error())}
		return failed, err
	}
	w.logger.Info("patient registered", zap.String("patient_id", patient.ID), zap.String("created_by", creatorID))

	page := w.Load(ctx, "")
	page.Notices = append([]notify.Notice{notify.Success(createdMessage)}, page.Notices...)
	return page, nil
}

func rows(patients []models.Patient) []Row {
	out := make([]Row, 0, len(patients))
	for _, p := range patients {
		out = append(out, Row{Patient: p, BirthDateDisplay: FormatDisplayDate(p.BirthDate.Time)})
	}
	return out
}

// FormatDisplayDate renders a date the way the Indonesian locale shows short
// dates, e.g. 17/5/1990.
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2/1/2006")
}
