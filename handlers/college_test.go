package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"campus-cravings-api/config"
	"campus-cravings-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCollegesActiveOnly(t *testing.T) {
	r := setupRouter(t)
	createCollege(t, "North Campus", "NC")
	inactive := createCollege(t, "Old Campus", "OC")
	require.NoError(t, config.DB.Model(&inactive).Update("is_active", false).Error)

	w := doJSON(t, r, http.MethodGet, "/api/college/all", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.NotContains(t, w.Body.String(), "Old Campus")
}

func TestCreateCollegeAdmin(t *testing.T) {
	r := setupRouter(t)
	home := createCollege(t, "Home Campus", "HC")
	_, adminToken := createUser(t, "admin@example.edu", models.RoleAdmin, &home.ID)
	_, clientToken := createUser(t, "client@example.edu", models.RoleClient, &home.ID)

	w := doJSON(t, r, http.MethodPost, "/api/college", clientToken, map[string]interface{}{
		"name": "West Campus", "code": "wc", "address": "2 West Rd",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/college", adminToken, map[string]interface{}{
		"name": "West Campus", "code": "wc", "address": "2 West Rd",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var college models.College
	require.NoError(t, config.DB.Where("name = ?", "West Campus").First(&college).Error)
	assert.Equal(t, "WC", college.Code, "code is stored uppercase")

	// Duplicate name or code conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/college", adminToken, map[string]interface{}{
		"name": "West Campus", "code": "WX", "address": "elsewhere",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteCollegeIsSoft(t *testing.T) {
	r := setupRouter(t)
	college := createCollege(t, "North Campus", "NC")
	_, adminToken := createUser(t, "admin@example.edu", models.RoleAdmin, &college.ID)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/college/%d", college.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.College
	require.NoError(t, config.DB.First(&reloaded, college.ID).Error, "record must still exist")
	assert.False(t, reloaded.IsActive)
}

func TestUserCollegeAssignment(t *testing.T) {
	r := setupRouter(t)
	college := createCollege(t, "North Campus", "NC")
	inactive := createCollege(t, "Old Campus", "OC")
	require.NoError(t, config.DB.Model(&inactive).Update("is_active", false).Error)
	_, token := createUser(t, "student@example.edu", models.RoleClient, nil)

	w := doJSON(t, r, http.MethodGet, "/api/college/user/college", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeBody(t, w)["college"])

	w = doJSON(t, r, http.MethodPut, "/api/college/user/college", token,
		map[string]interface{}{"college_id": inactive.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/college/user/college", token,
		map[string]interface{}{"college_id": college.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/college/user/college", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "North Campus")
}
