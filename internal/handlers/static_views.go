package handlers

import (
	"context"
	"net/http"

	"klinik-sentosa-server/internal/staticdata"
	"klinik-sentosa-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// DocumentFetcher loads the demo document.
type DocumentFetcher interface {
	Fetch(ctx context.Context) (*staticdata.Document, error)
}

// StaticViewHandler serves the pages built from the demo document. They need
// no session.
type StaticViewHandler struct {
	Fetcher DocumentFetcher
}

func NewStaticViewHandler(fetcher DocumentFetcher) *StaticViewHandler {
	return &StaticViewHandler{Fetcher: fetcher}
}

// GetOverview renders the clinic overview. ?antrian=, ?dokter= and ?layanan=
// select a queue entry, doctor or service for the detail dialogs.
func (h *StaticViewHandler) GetOverview(c *gin.Context) {
	doc, err := h.Fetcher.Fetch(c.Request.Context())
	if err != nil {
		utils.ErrorWithData(c, http.StatusBadGateway, err.Error(), staticdata.NewOverviewError())
		return
	}

	view := staticdata.BuildOverview(doc, staticdata.Selection{
		Antrian: c.Query("antrian"),
		Dokter:  c.Query("dokter"),
		Layanan: c.Query("layanan"),
	})
	utils.Success(c, "Clinic overview fetched successfully", view)
}

// GetStudentProfile renders the student profile page.
func (h *StaticViewHandler) GetStudentProfile(c *gin.Context) {
	doc, err := h.Fetcher.Fetch(c.Request.Context())
	if err != nil {
		utils.ErrorWithData(c, http.StatusBadGateway, err.Error(), staticdata.NewProfileError(err))
		return
	}

	view, err := staticdata.BuildStudentProfile(doc)
	if err != nil {
		utils.ErrorWithData(c, http.StatusBadGateway, err.Error(), staticdata.NewProfileError(err))
		return
	}
	utils.Success(c, "Student profile fetched successfully", view)
}
