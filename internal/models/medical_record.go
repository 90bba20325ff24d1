package models

import (
	"time"
)

// MedicalRecord is one examination of a patient by a doctor.
type MedicalRecord struct {
	BaseModel
	PatientID string    `gorm:"size:36;index;not null" json:"patient_id"`
	DoctorID  string    `gorm:"column:dokter_id;size:36;index;not null" json:"dokter_id"`
	Complaint string    `gorm:"column:keluhan;type:text;not null" json:"keluhan"`
	Symptoms  string    `gorm:"column:gejala;type:text;not null" json:"gejala"`
	Diagnosis string    `gorm:"type:text;not null" json:"diagnosis"`
	Notes     *string   `gorm:"column:catatan;type:text" json:"catatan"`
	ExamDate  time.Time `gorm:"column:tanggal_pemeriksaan;not null" json:"tanggal_pemeriksaan"`

	// Relations
	Patient       *Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:MedicalRecordID" json:"prescriptions,omitempty"`
}
