package routes

import (
	"klinik-sentosa-server/internal/access"
	"klinik-sentosa-server/internal/config"
	"klinik-sentosa-server/internal/handlers"
	"klinik-sentosa-server/internal/middleware"
	"klinik-sentosa-server/internal/models"
	"klinik-sentosa-server/internal/registration"
	"klinik-sentosa-server/internal/repository"
	"klinik-sentosa-server/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the long-lived services the handlers are built from.
type Dependencies struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *zap.Logger
	Sessions *session.Manager
	Resolver *access.Resolver
	Workflow *registration.Workflow
	Fetcher  handlers.DocumentFetcher
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(repository.NewUserRepository(deps.DB), deps.Sessions, deps.Logger)
	dashboardHandler := handlers.NewDashboardHandler(deps.Resolver)
	registrationHandler := handlers.NewRegistrationHandler(deps.Workflow)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(deps.DB)
	pharmacyHandler := handlers.NewPharmacyHandler(deps.DB)
	paymentHandler := handlers.NewPaymentHandler(deps.DB)
	staticHandler := handlers.NewStaticViewHandler(deps.Fetcher)

	requireSession := middleware.AuthMiddleware(deps.Sessions, deps.Logger)
	requireRole := func(roles ...models.Role) gin.HandlerFunc {
		return middleware.RoleAuthMiddleware(deps.Resolver, deps.Logger, roles...)
	}

	// The demo document is served by this process and fetched back by the
	// static views.
	router.StaticFile("/db.json", deps.Config.StaticDocument.Path)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
		}

		public.GET("/klinik", staticHandler.GetOverview)
		public.GET("/profil-mahasiswa", staticHandler.GetStudentProfile)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(requireSession)
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/session", authHandler.GetSession)
		}

		// Every signed-in identity lands here, with or without a role.
		private.GET("/dashboard", dashboardHandler.GetDashboard)

		registrationRoutes := private.Group("/admin-pendaftaran")
		registrationRoutes.Use(requireRole(models.RoleAdminPendaftaran))
		{
			registrationRoutes.GET("/patients", registrationHandler.ListPatients)
			registrationRoutes.POST("/patients", registrationHandler.CreatePatient)
			registrationRoutes.GET("/patients/export", registrationHandler.ExportPatients)
		}

		doctorRoutes := private.Group("/dokter")
		doctorRoutes.Use(requireRole(models.RoleDokter))
		{
			doctorRoutes.GET("/patients", medicalRecordHandler.ListPatients)
			doctorRoutes.GET("/patients/:patientId/medical-records", medicalRecordHandler.GetMedicalRecordsForPatient)
			doctorRoutes.POST("/medical-records", medicalRecordHandler.CreateMedicalRecord)
			doctorRoutes.POST("/medical-records/:id/prescriptions", medicalRecordHandler.CreatePrescription)
		}

		pharmacyRoutes := private.Group("/apoteker")
		pharmacyRoutes.Use(requireRole(models.RoleApoteker))
		{
			pharmacyRoutes.GET("/medicines", pharmacyHandler.ListMedicines)
			pharmacyRoutes.POST("/medicines", pharmacyHandler.CreateMedicine)
			pharmacyRoutes.PATCH("/medicines/:id/stock", pharmacyHandler.AdjustStock)
			pharmacyRoutes.GET("/prescriptions", pharmacyHandler.ListPrescriptions)
			pharmacyRoutes.POST("/prescriptions/:id/fulfill", pharmacyHandler.FulfillPrescription)
		}

		paymentRoutes := private.Group("/pembayaran")
		paymentRoutes.Use(requireRole(models.RolePembayaran))
		{
			paymentRoutes.GET("/payments", paymentHandler.ListPayments)
			paymentRoutes.POST("/payments", paymentHandler.CreatePayment)
			paymentRoutes.PATCH("/payments/:id/pay", paymentHandler.MarkPaid)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
