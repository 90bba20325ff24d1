package models

import (
	"fmt"
	"time"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentMethod is how the patient settles the bill.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "tunai"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentQRIS     PaymentMethod = "qris"
)

// ParsePaymentMethod validates a submitted payment method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCash, PaymentTransfer, PaymentQRIS:
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// Payment is the bill for one medical record.
type Payment struct {
	BaseModel
	MedicalRecordID string        `gorm:"size:36;index;not null" json:"medical_record_id"`
	PatientID       string        `gorm:"size:36;index;not null" json:"patient_id"`
	Method          PaymentMethod `gorm:"column:payment_method;size:20;not null" json:"payment_method"`
	Status          PaymentStatus `gorm:"column:payment_status;size:20;default:'pending';not null" json:"payment_status"`
	TotalAmount     float64       `gorm:"not null" json:"total_amount"`
	PaidAt          *time.Time    `json:"paid_at"`
	ReceiptURL      *string       `gorm:"column:barcode_url;size:512" json:"barcode_url"`
	CreatedBy       *string       `gorm:"size:36" json:"created_by"`

	MedicalRecord *MedicalRecord `gorm:"foreignKey:MedicalRecordID" json:"-"`
	Patient       *Patient       `gorm:"foreignKey:PatientID" json:"-"`
}

// MarkPaid moves a pending payment to paid.
func (p *Payment) MarkPaid(at time.Time) error {
	if p.Status == PaymentPaid {
		return fmt.Errorf("payment %s is already paid", p.ID)
	}
	p.Status = PaymentPaid
	p.PaidAt = &at
	return nil
}
