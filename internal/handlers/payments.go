package handlers

import (
	"errors"
	"time"

	"klinik-sentosa-server/internal/middleware"
	"klinik-sentosa-server/internal/models"
	"klinik-sentosa-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentHandler serves the cashier.
type PaymentHandler struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db, now: time.Now}
}

// CreatePaymentRequest represents the request body for billing a medical record.
type CreatePaymentRequest struct {
	MedicalRecordID string  `json:"medical_record_id" binding:"required,uuid"`
	Method          string  `json:"payment_method" binding:"required,oneof=tunai transfer qris"`
	TotalAmount     float64 `json:"total_amount" binding:"required,gt=0"`
}

// ListPayments lists payments by ?status= (default pending), oldest first.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	status := models.PaymentStatus(c.DefaultQuery("status", string(models.PaymentPending)))
	if status != models.PaymentPending && status != models.PaymentPaid {
		utils.BadRequest(c, "Invalid status. Expected pending or paid")
		return
	}

	var payments []models.Payment
	err := h.DB.WithContext(c.Request.Context()).
		Where("payment_status = ?", status).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch payments: "+err.Error())
		return
	}
	utils.Success(c, "Payments fetched successfully", payments)
}

// CreatePayment bills a medical record. The patient is taken from the record.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	method, err := models.ParsePaymentMethod(req.Method)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var record models.MedicalRecord
	if err := db.First(&record, "id = ?", req.MedicalRecordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	payment := models.Payment{
		MedicalRecordID: record.ID,
		PatientID:       record.PatientID,
		Method:          method,
		Status:          models.PaymentPending,
		TotalAmount:     req.TotalAmount,
	}
	if cashierID, ok := middleware.GetUserIDFromContext(c); ok {
		payment.CreatedBy = &cashierID
	}

	if err := db.Create(&payment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create payment: "+err.Error())
		return
	}
	utils.Created(c, "Payment created successfully", payment)
}

// MarkPaid settles a pending payment.
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		utils.BadRequest(c, "Invalid Payment ID format")
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var payment models.Payment
	if err := db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Payment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := payment.MarkPaid(h.now()); err != nil {
		utils.Conflict(c, err.Error())
		return
	}

	// Another cashier may have settled it since the read above.
	res := db.Model(&models.Payment{}).
		Where("id = ? AND payment_status = ?", payment.ID, models.PaymentPending).
		Updates(map[string]interface{}{
			"payment_status": payment.Status,
			"paid_at":        payment.PaidAt,
		})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to update payment: "+res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.Conflict(c, "payment "+payment.ID+" is already paid")
		return
	}
	utils.Success(c, "Payment marked as paid", payment)
}
