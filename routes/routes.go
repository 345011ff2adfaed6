package routes

import (
	"os"
	"strings"

	"bookeasy-backend/config"
	"bookeasy-backend/controllers"
	"bookeasy-backend/models"
	"bookeasy-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public booking surface, no authentication.
	public := r.Group("/api")
	{
		public.GET("/availability", controllers.GetPublicAvailability)
		public.POST("/book", controllers.BookAppointment)
	}

	// Provider dashboard routes: client users act on their own client,
	// admins may pass an explicit clientId.
	clientAPI := r.Group("/api/clients")
	clientAPI.Use(utils.AuthMiddleware(), utils.RequireRole(models.RoleClient, models.RoleAdmin))
	{
		availability := clientAPI.Group("/availability")
		{
			availability.GET("", controllers.GetAvailability)
			availability.POST("", controllers.SetAvailability)
			availability.DELETE("/:id", controllers.DeleteAvailability)
		}

		appointments := clientAPI.Group("/appointments")
		{
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PATCH("/:id", controllers.UpdateAppointmentStatus)
			appointments.DELETE("/:id", controllers.CancelAppointment)
		}

		clientAPI.GET("/stats", controllers.GetClientStats)
	}

	admin := r.Group("/api/admin")
	admin.Use(utils.AuthMiddleware(), utils.RequireRole(models.RoleAdmin))
	{
		clients := admin.Group("/clients")
		{
			clients.GET("", controllers.GetClients)
			clients.POST("", controllers.CreateClient)
			clients.GET("/:id/details", controllers.GetClientDetails)
			clients.GET("/:id/services", controllers.GetClientServices)
			clients.POST("/:id/services", controllers.AssignService)
			clients.PUT("/:id/services/:serviceId", controllers.UpdateClientService)
			clients.DELETE("/:id/services/:serviceId", controllers.RemoveClientService)
		}

		clientTypes := admin.Group("/client-types")
		{
			clientTypes.GET("", controllers.GetClientTypes)
			clientTypes.POST("", controllers.CreateClientType)
			clientTypes.PUT("/:id", controllers.UpdateClientType)
			clientTypes.DELETE("/:id", controllers.DeleteClientType)
		}

		services := admin.Group("/services")
		{
			services.GET("", controllers.GetServices)
			services.POST("", controllers.CreateService)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		admin.GET("/appointments", controllers.GetAllAppointments)
		admin.GET("/stats", controllers.GetAdminStats)
		admin.GET("/audit-logs", controllers.GetAuditLogs)
	}

	return r
}
