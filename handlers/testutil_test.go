package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"campus-cravings-api/config"
	"campus-cravings-api/handlers"
	"campus-cravings-api/middleware"
	"campus-cravings-api/models"
	"campus-cravings-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var dbCounter int64

// setupRouter builds a router over a fresh in-memory database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	require.NoError(t, config.InitDB(dsn))

	handlers.Setup(nil, zap.NewNop())

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createCollege(t *testing.T, name, code string) models.College {
	t.Helper()
	college := models.College{Name: name, Code: code, Address: "1 Campus Way", IsActive: true}
	require.NoError(t, config.DB.Create(&college).Error)
	return college
}

func createUser(t *testing.T, email string, role models.UserRole, collegeID *uint) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Name:         "Test " + email,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CollegeID:    collegeID,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func createMenuItem(t *testing.T, collegeID uint, name string, price float64, available bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		CollegeID: collegeID,
		Name:      name,
		Price:     price,
		Category:  "Lunch",
		Available: available,
	}
	require.NoError(t, config.DB.Create(&item).Error)
	return item
}
