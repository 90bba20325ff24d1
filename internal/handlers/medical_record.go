package handlers

import (
	"errors"
	"time"

	"klinik-sentosa-server/internal/middleware"
	"klinik-sentosa-server/internal/models"
	"klinik-sentosa-server/internal/repository"
	"klinik-sentosa-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicalRecordHandler serves the doctor's examination desk.
type MedicalRecordHandler struct {
	DB            *gorm.DB
	Patients      *repository.PatientRepository
	Prescriptions *repository.PrescriptionRepository
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		DB:            db,
		Patients:      repository.NewPatientRepository(db),
		Prescriptions: repository.NewPrescriptionRepository(db),
	}
}

// CreateMedicalRecordRequest represents the request body for creating a medical record.
type CreateMedicalRecordRequest struct {
	PatientID string `json:"patient_id" binding:"required,uuid"`
	Complaint string `json:"keluhan" binding:"required"`
	Symptoms  string `json:"gejala" binding:"required"`
	Diagnosis string `json:"diagnosis" binding:"required"`
	Notes     string `json:"catatan"`
	ExamDate  string `json:"tanggal_pemeriksaan"`
}

// PrescriptionItemRequest is one medicine line of a new prescription.
type PrescriptionItemRequest struct {
	MedicineID   string `json:"medicine_id" binding:"required,uuid"`
	Quantity     int    `json:"jumlah" binding:"required,gt=0"`
	Instructions string `json:"aturan_pakai" binding:"required"`
}

// CreatePrescriptionRequest represents the request body for a prescription.
type CreatePrescriptionRequest struct {
	Items []PrescriptionItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ListPatients lists registered patients, newest first.
func (h *MedicalRecordHandler) ListPatients(c *gin.Context) {
	patients, err := h.Patients.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

// CreateMedicalRecord records an examination by the calling doctor.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor ID not found in session")
		return
	}

	examDate := time.Now()
	if req.ExamDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExamDate)
		if err != nil {
			utils.BadRequest(c, "Invalid date format. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)")
			return
		}
		examDate = parsed
	}

	// Verify patient exists
	patient, err := h.Patients.FindByID(c.Request.Context(), req.PatientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	record := models.MedicalRecord{
		PatientID: patient.ID,
		DoctorID:  doctorID,
		Complaint: req.Complaint,
		Symptoms:  req.Symptoms,
		Diagnosis: req.Diagnosis,
		ExamDate:  examDate,
	}
	if req.Notes != "" {
		notes := req.Notes
		record.Notes = &notes
	}

	if err := h.DB.WithContext(c.Request.Context()).Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medical record: "+err.Error())
		return
	}

	utils.Created(c, "Medical record created successfully", record)
}

// GetMedicalRecordsForPatient lists a patient's examinations, newest first,
// with their prescriptions.
func (h *MedicalRecordHandler) GetMedicalRecordsForPatient(c *gin.Context) {
	patientID := c.Param("patientId")
	if _, err := uuid.Parse(patientID); err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	if _, err := h.Patients.FindByID(c.Request.Context(), patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	var records []models.MedicalRecord
	err := h.DB.WithContext(c.Request.Context()).
		Preload("Prescriptions.Items.Medicine").
		Where("patient_id = ?", patientID).
		Order("tanggal_pemeriksaan DESC").
		Find(&records).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}

	utils.Success(c, "Medical records fetched successfully", records)
}

// CreatePrescription attaches a prescription to a medical record.
func (h *MedicalRecordHandler) CreatePrescription(c *gin.Context) {
	recordID := c.Param("id")
	if _, err := uuid.Parse(recordID); err != nil {
		utils.BadRequest(c, "Invalid Medical Record ID format")
		return
	}

	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var record models.MedicalRecord
	if err := db.First(&record, "id = ?", recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	medicineIDs := make([]string, 0, len(req.Items))
	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if !seen[item.MedicineID] {
			seen[item.MedicineID] = true
			medicineIDs = append(medicineIDs, item.MedicineID)
		}
	}
	var known int64
	if err := db.Model(&models.Medicine{}).Where("id IN ?", medicineIDs).Count(&known).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if int(known) != len(medicineIDs) {
		utils.NotFound(c, "One or more medicines not found")
		return
	}

	prescription := models.Prescription{
		MedicalRecordID: record.ID,
		Status:          models.PrescriptionPending,
	}
	for _, item := range req.Items {
		prescription.Items = append(prescription.Items, models.PrescriptionItem{
			MedicineID:   item.MedicineID,
			Quantity:     item.Quantity,
			Instructions: item.Instructions,
		})
	}

	if err := h.Prescriptions.Create(c.Request.Context(), &prescription); err != nil {
		utils.InternalServerError(c, "Failed to create prescription: "+err.Error())
		return
	}

	utils.Created(c, "Prescription created successfully", prescription)
}
