package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"klinik-sentosa-server/internal/middleware"
	"klinik-sentosa-server/internal/registration"
	"klinik-sentosa-server/internal/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RegistrationHandler serves the registration desk.
type RegistrationHandler struct {
	Workflow *registration.Workflow
}

func NewRegistrationHandler(workflow *registration.Workflow) *RegistrationHandler {
	return &RegistrationHandler{Workflow: workflow}
}

// ListPatients returns the patient table, filtered by ?search=.
func (h *RegistrationHandler) ListPatients(c *gin.Context) {
	page := h.Workflow.Load(c.Request.Context(), c.Query("search"))
	utils.Success(c, "Patients fetched successfully", page, page.Notices...)
}

// CreatePatient registers a patient. Rejected submissions echo the form back.
func (h *RegistrationHandler) CreatePatient(c *gin.Context) {
	var form registration.PatientForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	page, err := h.Workflow.CreatePatient(c.Request.Context(), userID, form)
	switch {
	case errors.Is(err, registration.ErrInvalidForm):
		utils.ErrorWithData(c, http.StatusBadRequest, err.Error(), page, page.Notices...)
	case err != nil:
		utils.ErrorWithData(c, http.StatusInternalServerError, err.Error(), page, page.Notices...)
	default:
		utils.Created(c, "Data pasien berhasil ditambahkan", page, page.Notices...)
	}
}

// ExportPatients downloads the (filtered) patient table as a workbook.
func (h *RegistrationHandler) ExportPatients(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.Workflow.ExportPatients(c.Request.Context(), c.Query("search"), &buf); err != nil {
		utils.InternalServerError(c, "Failed to export patients: "+err.Error())
		return
	}

	filename := fmt.Sprintf("daftar-pasien-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
