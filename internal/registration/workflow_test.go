package registration

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"klinik-sentosa-server/internal/models"
	"klinik-sentosa-server/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// memoryStore keeps patients newest first, like the real table query.
type memoryStore struct {
	patients    []models.Patient
	listErr     error
	insertErr   error
	listCalls   int
	insertCalls int
}

func (s *memoryStore) List(context.Context) ([]models.Patient, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.Patient, len(s.patients))
	copy(out, s.patients)
	return out, nil
}

func (s *memoryStore) Insert(_ context.Context, p *models.Patient) error {
	s.insertCalls++
	if s.insertErr != nil {
		return s.insertErr
	}
	p.ID = "new-id"
	p.CreatedAt = time.Now()
	s.patients = append([]models.Patient{*p}, s.patients...)
	return nil
}

func patient(name, phone string) models.Patient {
	birth, _ := models.ParseDate("1990-05-17")
	return models.Patient{FullName: name, Phone: phone, BirthDate: birth, Gender: models.GenderFemale, Address: "Jl. Melati"}
}

func validForm() PatientForm {
	return PatientForm{
		FullName:  "Sri Wahyuni",
		BirthDate: "1990-05-17",
		Gender:    "Perempuan",
		Address:   "Jl. Melati 2, Bandung",
		Phone:     "081234567890",
	}
}

func TestFilter(t *testing.T) {
	all := []models.Patient{
		patient("Sri Wahyuni", "081234"),
		patient("Budi Santoso", "085799"),
		patient("Andi", "0812-SRI"),
	}

	tests := []struct {
		name  string
		term  string
		names []string
	}{
		{"empty term keeps all", "", []string{"Sri Wahyuni", "Budi Santoso", "Andi"}},
		{"name ignores case", "sri", []string{"Sri Wahyuni"}},
		{"phone substring", "0857", []string{"Budi Santoso"}},
		{"phone is case sensitive", "SRI", []string{"Sri Wahyuni", "Andi"}},
		{"no match", "zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, p := range Filter(all, tt.term) {
				got = append(got, p.FullName)
			}
			assert.Equal(t, tt.names, got)
		})
	}
}

func TestFilter_EmptyTermReturnsSameSlice(t *testing.T) {
	all := []models.Patient{patient("Sri", "1")}
	assert.Equal(t, all, Filter(all, ""))
}

func TestWorkflow_Load(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		w := NewWorkflow(&memoryStore{}, zap.NewNop())
		page := w.Load(context.Background(), "")
		assert.Empty(t, page.Patients)
		assert.Equal(t, "Belum ada data pasien", page.EmptyMessage)
		assert.Empty(t, page.Notices)
	})

	t.Run("store failure", func(t *testing.T) {
		w := NewWorkflow(&memoryStore{listErr: errors.New("boom")}, zap.NewNop())
		page := w.Load(context.Background(), "")
		assert.Empty(t, page.Patients)
		require.Len(t, page.Notices, 1)
		assert.Equal(t, "Gagal memuat data pasien", page.Notices[0].Description)
		assert.Equal(t, notify.VariantDestructive, page.Notices[0].Variant)
	})

	t.Run("display date", func(t *testing.T) {
		w := NewWorkflow(&memoryStore{patients: []models.Patient{patient("Sri", "1")}}, zap.NewNop())
		page := w.Load(context.Background(), "")
		require.Len(t, page.Patients, 1)
		assert.Equal(t, "17/5/1990", page.Patients[0].BirthDateDisplay)
	})
}

func TestWorkflow_CreatePatient(t *testing.T) {
	t.Run("inserts and returns refreshed list", func(t *testing.T) {
		store := &memoryStore{patients: []models.Patient{patient("Budi Santoso", "0857")}}
		w := NewWorkflow(store, zap.NewNop())

		page, err := w.CreatePatient(context.Background(), "admin-1", validForm())
		require.NoError(t, err)
		assert.Equal(t, 1, store.insertCalls)
		require.Len(t, page.Patients, 2)
		assert.Equal(t, "Sri Wahyuni", page.Patients[0].FullName)
		require.NotNil(t, page.Patients[0].CreatedBy)
		assert.Equal(t, "admin-1", *page.Patients[0].CreatedBy)
		assert.Nil(t, page.Patients[0].NationalID)
		assert.False(t, page.ModalOpen)
		assert.Equal(t, PatientForm{}, page.Form)
		require.Len(t, page.Notices, 1)
		assert.Equal(t, "Data pasien berhasil ditambahkan", page.Notices[0].Description)
		assert.Equal(t, notify.VariantDefault, page.Notices[0].Variant)
	})

	t.Run("keeps optional national id", func(t *testing.T) {
		store := &memoryStore{}
		w := NewWorkflow(store, zap.NewNop())
		form := validForm()
		form.NationalID = " 3273010101900001 "

		_, err := w.CreatePatient(context.Background(), "admin-1", form)
		require.NoError(t, err)
		require.NotNil(t, store.patients[0].NationalID)
		assert.Equal(t, "3273010101900001", *store.patients[0].NationalID)
	})

	t.Run("invalid forms never reach the store", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*PatientForm)
			field  string
		}{
			{"missing name", func(f *PatientForm) { f.FullName = "" }, "nama_lengkap"},
			{"blank name", func(f *PatientForm) { f.FullName = "   " }, "nama_lengkap"},
			{"missing birth date", func(f *PatientForm) { f.BirthDate = "" }, "tanggal_lahir"},
			{"bad birth date", func(f *PatientForm) { f.BirthDate = "17-05-1990" }, "tanggal_lahir"},
			{"missing gender", func(f *PatientForm) { f.Gender = "" }, "jenis_kelamin"},
			{"unknown gender", func(f *PatientForm) { f.Gender = "L" }, "jenis_kelamin"},
			{"missing address", func(f *PatientForm) { f.Address = "" }, "alamat"},
			{"missing phone", func(f *PatientForm) { f.Phone = "" }, "no_telp"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := &memoryStore{}
				w := NewWorkflow(store, zap.NewNop())
				form := validForm()
				tt.mutate(&form)

				page, err := w.CreatePatient(context.Background(), "admin-1", form)
				assert.ErrorIs(t, err, ErrInvalidForm)
				assert.Zero(t, store.insertCalls)
				assert.Zero(t, store.listCalls)
				assert.Contains(t, page.FieldErrors, tt.field)
				assert.True(t, page.ModalOpen)
				assert.Equal(t, form, page.Form)
				require.Len(t, page.Notices, 1)
				assert.Equal(t, notify.VariantDestructive, page.Notices[0].Variant)
			})
		}
	})

	t.Run("insert failure keeps the form", func(t *testing.T) {
		store := &memoryStore{insertErr: errors.New(`duplicate key value violates unique constraint "patients_pkey"`)}
		w := NewWorkflow(store, zap.NewNop())

		page, err := w.CreatePatient(context.Background(), "admin-1", validForm())
		require.Error(t, err)
		assert.True(t, page.ModalOpen)
		assert.Equal(t, validForm(), page.Form)
		require.Len(t, page.Notices, 1)
		assert.Equal(t, `duplicate key value violates unique constraint "patients_pkey"`, page.Notices[0].Description)
		assert.Zero(t, store.listCalls)
	})
}

func TestWorkflow_ExportPatients(t *testing.T) {
	nid := "3201"
	p := patient("Sri Wahyuni", "081234")
	p.NationalID = &nid
	store := &memoryStore{patients: []models.Patient{p, patient("Budi Santoso", "085799")}}
	w := NewWorkflow(store, zap.NewNop())

	var buf bytes.Buffer
	n, err := w.ExportPatients(context.Background(), "sri", &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ExportSheet}, f.GetSheetList())
	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, []string{"Sri Wahyuni", "1990-05-17", "Perempuan", "081234", "Jl. Melati", "3201"}, rows[1])
}

func TestWorkflow_ExportPatientsStoreError(t *testing.T) {
	w := NewWorkflow(&memoryStore{listErr: errors.New("boom")}, zap.NewNop())
	_, err := w.ExportPatients(context.Background(), "", &bytes.Buffer{})
	assert.Error(t, err)
}
