package models

import "fmt"

// Gender is stored as the free-text label shown on the registration form.
type Gender string

const (
	GenderMale   Gender = "Laki-laki"
	GenderFemale Gender = "Perempuan"
)

// ParseGender accepts exactly the two form labels.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(s); g {
	case GenderMale, GenderFemale:
		return g, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// Patient is a registered clinic patient. Rows are never hard-deleted.
type Patient struct {
	BaseModel
	FullName   string  `gorm:"column:nama_lengkap;size:255;not null" json:"nama_lengkap"`
	BirthDate  Date    `gorm:"column:tanggal_lahir;not null" json:"tanggal_lahir"`
	Gender     Gender  `gorm:"column:jenis_kelamin;size:20;not null" json:"jenis_kelamin"`
	Address    string  `gorm:"column:alamat;type:text;not null" json:"alamat"`
	Phone      string  `gorm:"column:no_telp;size:32;not null" json:"no_telp"`
	NationalID *string `gorm:"column:no_identitas;size:64" json:"no_identitas"`
	CreatedBy  *string `gorm:"column:created_by;size:36" json:"created_by"`

	MedicalRecords []MedicalRecord `gorm:"foreignKey:PatientID" json:"-"`
}
