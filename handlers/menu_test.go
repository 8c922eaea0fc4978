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

func TestListMenuOnlyAvailable(t *testing.T) {
	r := setupRouter(t)
	college := createCollege(t, "North Campus", "NC")
	createMenuItem(t, college.ID, "Dosa", 4.50, true)
	createMenuItem(t, college.ID, "Thali", 6.00, false)

	w := doJSON(t, r, http.MethodGet, "/api/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.Contains(t, w.Body.String(), "Dosa")
	assert.NotContains(t, w.Body.String(), "Thali")
}

func TestListMenuCollegeScope(t *testing.T) {
	r := setupRouter(t)
	north := createCollege(t, "North Campus", "NC")
	south := createCollege(t, "South Campus", "SC")
	createMenuItem(t, north.ID, "Dosa", 4.50, true)
	createMenuItem(t, south.ID, "Idli", 3.00, true)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/menu?collegeId=%d", south.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Idli")
	assert.NotContains(t, w.Body.String(), "Dosa")

	w = doJSON(t, r, http.MethodGet, "/api/menu?collegeId=424242", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMenuDefaultsToCallerCollege(t *testing.T) {
	r := setupRouter(t)
	north := createCollege(t, "North Campus", "NC")
	south := createCollege(t, "South Campus", "SC")
	createMenuItem(t, north.ID, "Dosa", 4.50, true)
	createMenuItem(t, south.ID, "Idli", 3.00, true)
	_, token := createUser(t, "southie@example.edu", models.RoleClient, &south.ID)

	// No explicit filter: the caller's selected college scopes the menu.
	w := doJSON(t, r, http.MethodGet, "/api/menu", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Idli")
	assert.NotContains(t, w.Body.String(), "Dosa")

	// An explicit collegeId wins over the caller's own.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/menu?collegeId=%d", north.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dosa")
	assert.NotContains(t, w.Body.String(), "Idli")

	// Anonymous callers still see everything.
	w = doJSON(t, r, http.MethodGet, "/api/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])

	// A garbage token does not turn the request away, it just gets
	// the anonymous view.
	w = doJSON(t, r, http.MethodGet, "/api/menu", "not-a-jwt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])
}

func TestListMenuPostBodyFilters(t *testing.T) {
	r := setupRouter(t)
	north := createCollege(t, "North Campus", "NC")
	south := createCollege(t, "South Campus", "SC")
	createMenuItem(t, north.ID, "Dosa", 4.50, true)
	createMenuItem(t, south.ID, "Idli", 3.00, true)

	w := doJSON(t, r, http.MethodPost, "/api/menu", "", map[string]interface{}{
		"collegeId": south.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Idli")
	assert.NotContains(t, w.Body.String(), "Dosa")

	// Query params win over the body.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/menu?collegeId=%d", north.ID), "",
		map[string]interface{}{"collegeId": south.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dosa")
	assert.NotContains(t, w.Body.String(), "Idli")

	// An empty body behaves like a GET.
	w = doJSON(t, r, http.MethodPost, "/api/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])
}

func TestListCategories(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/menu/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Beverages")
}

func TestMenuAdminGating(t *testing.T) {
	r := setupRouter(t)
	college := createCollege(t, "North Campus", "NC")
	_, clientToken := createUser(t, "client@example.edu", models.RoleClient, &college.ID)
	item := createMenuItem(t, college.ID, "Dosa", 4.50, true)

	w := doJSON(t, r, http.MethodPost, "/api/menu/add", clientToken, map[string]interface{}{
		"name": "Coffee", "price": 2.0, "college_id": college.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/menu/%d", item.ID), clientToken,
		map[string]interface{}{"price": 1.0})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/menu/%d", item.ID), clientToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateMenuItemAdmin(t *testing.T) {
	r := setupRouter(t)
	college := createCollege(t, "North Campus", "NC")
	_, adminToken := createUser(t, "admin@example.edu", models.RoleAdmin, &college.ID)

	w := doJSON(t, r, http.MethodPost, "/api/menu/add", adminToken, map[string]interface{}{
		"name": "Coffee", "price": 2.0, "category": "Beverages",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item models.MenuItem
	require.NoError(t, config.DB.Where("name = ?", "Coffee").First(&item).Error)
	assert.Equal(t, college.ID, item.CollegeID)
	assert.True(t, item.Available)

	w = doJSON(t, r, http.MethodPost, "/api/menu/add", adminToken, map[string]interface{}{
		"name": "Mystery", "price": 2.0, "category": "NotACategory",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMenuItemFreeItem(t *testing.T) {
	r := setupRouter(t)
	college := createCollege(t, "North Campus", "NC")
	_, adminToken := createUser(t, "admin@example.edu", models.RoleAdmin, &college.ID)

	// Giveaways are legitimate; a zero price must not fail validation.
	w := doJSON(t, r, http.MethodPost, "/api/menu/add", adminToken, map[string]interface{}{
		"name": "Water", "price": 0, "category": "Beverages",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item models.MenuItem
	require.NoError(t, config.DB.Where("name = ?", "Water").First(&item).Error)
	assert.Equal(t, 0.0, item.Price)

	// Missing price is still a validation error.
	w = doJSON(t, r, http.MethodPost, "/api/menu/add", adminToken, map[string]interface{}{
		"name": "Mystery", "category": "Beverages",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// As is a negative one.
	w = doJSON(t, r, http.MethodPost, "/api/menu/add", adminToken, map[string]interface{}{
		"name": "Refund", "price": -1.0, "category": "Beverages",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMenuItemCollegeMismatch(t *testing.T) {
	r := setupRouter(t)
	north := createCollege(t, "North Campus", "NC")
	south := createCollege(t, "South Campus", "SC")
	_, adminToken := createUser(t, "admin@example.edu", models.RoleAdmin, &north.ID)
	item := createMenuItem(t, south.ID, "Idli", 3.00, true)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/menu/%d", item.ID), adminToken,
		map[string]interface{}{"price": 3.50})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateAndDeleteMenuItem(t *testing.T) {
	r := setupRouter(t)
	college := createCollege(t, "North Campus", "NC")
	_, adminToken := createUser(t, "admin@example.edu", models.RoleAdmin, &college.ID)
	item := createMenuItem(t, college.ID, "Dosa", 4.50, true)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/menu/%d", item.ID), adminToken,
		map[string]interface{}{"price": 5.00, "available": false})
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.MenuItem
	require.NoError(t, config.DB.First(&reloaded, item.ID).Error)
	assert.Equal(t, 5.00, reloaded.Price)
	assert.False(t, reloaded.Available)

	// Menu items are hard-deleted, unlike colleges.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/menu/%d", item.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count int64
	config.DB.Model(&models.MenuItem{}).Count(&count)
	assert.Zero(t, count)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/menu/%d", item.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
