package main

import (
	"fmt"
	"log"
	"os"

	"bookeasy-backend/config"
	"bookeasy-backend/controllers"
	"bookeasy-backend/models"
	"bookeasy-backend/routes"
	"bookeasy-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	if err := models.AutoMigrate(config.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seedAdmin()
}

func main() {
	booking := services.NewBookingService(config.DB).WithNotifier(services.NewNotifyService())
	controllers.InitBookingService(booking)

	reminders := services.NewReminderService(config.DB, services.NewNotifyService())
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

// seedAdmin creates the initial admin account when ADMIN_USERNAME and
// ADMIN_PASSWORD are set and no user with that username exists yet.
func seedAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	var count int64
	config.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = username + "@localhost"
	}

	admin := models.User{
		Username: username,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Printf("Admin seed failed: %v", err)
		return
	}
	log.Printf("Seeded admin user %s", username)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
