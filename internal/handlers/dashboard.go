package handlers

import (
	"klinik-sentosa-server/internal/access"
	"klinik-sentosa-server/internal/dashboard"
	"klinik-sentosa-server/internal/middleware"
	"klinik-sentosa-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the role landing page.
type DashboardHandler struct {
	Resolver *access.Resolver
}

func NewDashboardHandler(resolver *access.Resolver) *DashboardHandler {
	return &DashboardHandler{Resolver: resolver}
}

// GetDashboard resolves the caller and renders its card. A caller without a
// role still gets a 200 with the fallback card and a notice.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	s, _ := middleware.SessionFromContext(c)

	res := h.Resolver.Resolve(c.Request.Context(), s)
	if res.Redirect != "" {
		utils.RedirectToAuth(c, res.Redirect)
		return
	}

	utils.Success(c, "Dashboard fetched successfully", dashboard.BuildView(res), res.Notices...)
}
