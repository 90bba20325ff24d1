package repository

import (
	"context"
	"errors"
	"fmt"

	"klinik-sentosa-server/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyFulfilled  = errors.New("prescription already fulfilled")
)

// PrescriptionRepository handles prescriptions and their items.
type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

// Create stores the prescription together with its items.
func (r *PrescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	if len(prescription.Items) == 0 {
		return fmt.Errorf("create prescription: at least one item is required")
	}
	if err := r.db.WithContext(ctx).Create(prescription).Error; err != nil {
		return fmt.Errorf("create prescription: %w", err)
	}
	return nil
}

// ListByStatus returns prescriptions with their items and medicines, oldest first.
func (r *PrescriptionRepository) ListByStatus(ctx context.Context, status models.PrescriptionStatus) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := r.db.WithContext(ctx).
		Preload("Items.Medicine").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	return prescriptions, nil
}

// Fulfill decrements stock for every item and marks the prescription
// fulfilled. Nothing is written unless every item is in stock. The
// prescription row stays locked until the transaction ends, so concurrent
// calls for the same id fulfil it at most once.
func (r *PrescriptionRepository) Fulfill(ctx context.Context, id string) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			First(&prescription, "id = ?", id).Error
		if err != nil {
			return translate(err)
		}
		if prescription.Status == models.PrescriptionFulfilled {
			return ErrAlreadyFulfilled
		}

		for _, item := range prescription.Items {
			res := tx.Model(&models.Medicine{}).
				Where("id = ? AND stok >= ?", item.MedicineID, item.Quantity).
				UpdateColumn("stok", gorm.Expr("stok - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock of %s: %w", item.MedicineID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: medicine %s", ErrInsufficientStock, item.MedicineID)
			}
		}

		// Update by key only: the loaded items must not be written back.
		res := tx.Model(&models.Prescription{}).
			Where("id = ? AND status = ?", id, models.PrescriptionPending).
			Update("status", models.PrescriptionFulfilled)
		if res.Error != nil {
			return fmt.Errorf("mark prescription fulfilled: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyFulfilled
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	prescription.Status = models.PrescriptionFulfilled
	return &prescription, nil
}
