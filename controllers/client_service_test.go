package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookeasy-backend/config"
	"bookeasy-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-level config.DB at a fresh in-memory
// database so handlers can be invoked directly.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db
	return db
}

func TestReassignServiceAfterRemoval(t *testing.T) {
	db := setupTestDB(t)

	ct := models.ClientType{Name: "Barbershop"}
	if err := db.Create(&ct).Error; err != nil {
		t.Fatalf("seed client type: %v", err)
	}
	client := models.Client{UserID: uuid.New(), Name: "Shop", Slug: "shop", ClientTypeID: ct.ID}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	svc := models.Service{Name: "Haircut", Duration: 30, IsActive: true}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	assign := func() *httptest.ResponseRecorder {
		body, _ := json.Marshal(gin.H{"serviceId": svc.ID.String(), "price": 25.0})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: client.ID.String()}}
		c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		AssignService(c)
		return w
	}

	if w := assign(); w.Code != http.StatusCreated {
		t.Fatalf("first assign: status %d, body %s", w.Code, w.Body)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{
		{Key: "id", Value: client.ID.String()},
		{Key: "serviceId", Value: svc.ID.String()},
	}
	c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
	RemoveClientService(c)
	if w.Code != http.StatusOK {
		t.Fatalf("remove: status %d, body %s", w.Code, w.Body)
	}

	// A withdrawn offering must be assignable again.
	if w := assign(); w.Code != http.StatusCreated {
		t.Fatalf("reassign after removal: status %d, body %s", w.Code, w.Body)
	}

	var live int64
	db.Model(&models.ClientService{}).
		Where("client_id = ? AND service_id = ?", client.ID, svc.ID).
		Count(&live)
	if live != 1 {
		t.Errorf("live client services = %d, want 1", live)
	}
}
