package handlers

import (
	"errors"

	"klinik-sentosa-server/internal/models"
	"klinik-sentosa-server/internal/repository"
	"klinik-sentosa-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PharmacyHandler serves the pharmacist: medicines, stock and prescriptions.
type PharmacyHandler struct {
	DB            *gorm.DB
	Prescriptions *repository.PrescriptionRepository
}

func NewPharmacyHandler(db *gorm.DB) *PharmacyHandler {
	return &PharmacyHandler{DB: db, Prescriptions: repository.NewPrescriptionRepository(db)}
}

// CreateMedicineRequest represents the request body for a new medicine.
type CreateMedicineRequest struct {
	Name  string  `json:"nama_obat" binding:"required"`
	Unit  string  `json:"satuan"`
	Price float64 `json:"harga" binding:"gte=0"`
	Stock int     `json:"stok" binding:"gte=0"`
}

// AdjustStockRequest changes stock by Delta, which may be negative.
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (h *PharmacyHandler) ListMedicines(c *gin.Context) {
	var medicines []models.Medicine
	if err := h.DB.WithContext(c.Request.Context()).Order("nama_obat ASC").Find(&medicines).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medicines: "+err.Error())
		return
	}
	utils.Success(c, "Medicines fetched successfully", medicines)
}

func (h *PharmacyHandler) CreateMedicine(c *gin.Context) {
	var req CreateMedicineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	medicine := models.Medicine{Name: req.Name, Unit: req.Unit, Price: req.Price, Stock: req.Stock}
	if medicine.Unit == "" {
		medicine.Unit = "tablet"
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&medicine).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medicine: "+err.Error())
		return
	}
	utils.Created(c, "Medicine created successfully", medicine)
}

// AdjustStock adds Delta to a medicine's stock. Stock never goes below zero.
func (h *PharmacyHandler) AdjustStock(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		utils.BadRequest(c, "Invalid Medicine ID format")
		return
	}

	var req AdjustStockRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var medicine models.Medicine
	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&medicine, "id = ?", id).Error; err != nil {
			return err
		}
		if medicine.Stock+req.Delta < 0 {
			return repository.ErrInsufficientStock
		}
		medicine.Stock += req.Delta
		return tx.Model(&medicine).Update("stok", medicine.Stock).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.NotFound(c, "Medicine not found")
	case errors.Is(err, repository.ErrInsufficientStock):
		utils.Conflict(c, "Stock cannot go below zero")
	case err != nil:
		utils.InternalServerError(c, "Failed to adjust stock: "+err.Error())
	default:
		utils.Success(c, "Stock updated successfully", medicine)
	}
}

// ListPrescriptions lists prescriptions by ?status= (default pending).
func (h *PharmacyHandler) ListPrescriptions(c *gin.Context) {
	status := models.PrescriptionStatus(c.DefaultQuery("status", string(models.PrescriptionPending)))
	if status != models.PrescriptionPending && status != models.PrescriptionFulfilled {
		utils.BadRequest(c, "Invalid status. Expected pending or fulfilled")
		return
	}

	prescriptions, err := h.Prescriptions.ListByStatus(c.Request.Context(), status)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}
	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// FulfillPrescription hands out a prescription, decrementing stock.
func (h *PharmacyHandler) FulfillPrescription(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		utils.BadRequest(c, "Invalid Prescription ID format")
		return
	}

	prescription, err := h.Prescriptions.Fulfill(c.Request.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.NotFound(c, "Prescription not found")
	case errors.Is(err, repository.ErrInsufficientStock), errors.Is(err, repository.ErrAlreadyFulfilled):
		utils.Conflict(c, err.Error())
	case err != nil:
		utils.InternalServerError(c, "Failed to fulfill prescription: "+err.Error())
	default:
		utils.Success(c, "Prescription fulfilled successfully", prescription)
	}
}
