package registration

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"klinik-sentosa-server/internal/models"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidForm marks a submission rejected before reaching the store.
var ErrInvalidForm = errors.New("invalid patient form")

// PatientForm is the registration form as submitted.
type PatientForm struct {
	FullName   string `json:"nama_lengkap" validate:"required"`
	BirthDate  string `json:"tanggal_lahir" validate:"required,datetime=2006-01-02"`
	Gender     string `json:"jenis_kelamin" validate:"required,oneof=Laki-laki Perempuan"`
	Address    string `json:"alamat" validate:"required"`
	Phone      string `json:"no_telp" validate:"required"`
	NationalID string `json:"no_identitas"`
}

var fieldLabels = map[string]string{
	"nama_lengkap":  "Nama Lengkap",
	"tanggal_lahir": "Tanggal Lahir",
	"jenis_kelamin": "Jenis Kelamin",
	"alamat":        "Alamat Lengkap",
	"no_telp":       "No. Telepon",
}

// FormError lists the rejected fields keyed by their JSON name.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, ", ")
}

func (e *FormError) Unwrap() error { return ErrInvalidForm }

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (f PatientForm) normalized() PatientForm {
	return PatientForm{
		FullName:   strings.TrimSpace(f.FullName),
		BirthDate:  strings.TrimSpace(f.BirthDate),
		Gender:     strings.TrimSpace(f.Gender),
		Address:    strings.TrimSpace(f.Address),
		Phone:      strings.TrimSpace(f.Phone),
		NationalID: strings.TrimSpace(f.NationalID),
	}
}

// validate checks the form and converts it into a patient row.
func (f PatientForm) validate(v *validator.Validate) (*models.Patient, error) {
	n := f.normalized()
	if err := v.Struct(n); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		fe := &FormError{Fields: make(map[string]string, len(verrs))}
		for _, e := range verrs {
			fe.Fields[e.Field()] = fieldMessage(e)
		}
		return nil, fe
	}

	birth, err := models.ParseDate(n.BirthDate)
	if err != nil {
		return nil, &FormError{Fields: map[string]string{"tanggal_lahir": err.Error()}}
	}
	gender, err := models.ParseGender(n.Gender)
	if err != nil {
		return nil, &FormError{Fields: map[string]string{"jenis_kelamin": err.Error()}}
	}

	patient := &models.Patient{
		FullName:  n.FullName,
		BirthDate: birth,
		Gender:    gender,
		Address:   n.Address,
		Phone:     n.Phone,
	}
	if n.NationalID != "" {
		id := n.NationalID
		patient.NationalID = &id
	}
	return patient, nil
}

func fieldMessage(e validator.FieldError) string {
	label := fieldLabels[e.Field()]
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s wajib diisi", label)
	case "datetime":
		return fmt.Sprintf("%s harus berformat YYYY-MM-DD", label)
	case "oneof":
		return fmt.Sprintf("%s harus Laki-laki atau Perempuan", label)
	}
	return fmt.Sprintf("%s tidak valid", label)
}
