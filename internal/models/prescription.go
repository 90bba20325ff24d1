package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrescriptionStatus represents the status of a prescription
type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "pending"
	PrescriptionFulfilled PrescriptionStatus = "fulfilled"
)

// Prescription belongs to a medical record and owns its items.
type Prescription struct {
	BaseModel
	MedicalRecordID string             `gorm:"size:36;index;not null" json:"medical_record_id"`
	Status          PrescriptionStatus `gorm:"size:20;default:'pending';not null" json:"status"`

	Items         []PrescriptionItem `gorm:"foreignKey:PrescriptionID" json:"items"`
	MedicalRecord *MedicalRecord     `gorm:"foreignKey:MedicalRecordID" json:"-"`
}

// PrescriptionItem is one medicine line of a prescription.
type PrescriptionItem struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PrescriptionID string    `gorm:"size:36;index;not null" json:"prescription_id"`
	MedicineID     string    `gorm:"size:36;index;not null" json:"medicine_id"`
	Quantity       int       `gorm:"column:jumlah;not null" json:"jumlah"`
	Instructions   string    `gorm:"column:aturan_pakai;type:text;not null" json:"aturan_pakai"`
	CreatedAt      time.Time `json:"created_at"`

	Medicine *Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

// BeforeCreate assigns the row id.
func (i *PrescriptionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
