package config

import (
	"errors"
	"testing"

	"campus-cravings-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicateKey(t *testing.T) {
	Load()
	require.NoError(t, InitDB("file:config_db_test?mode=memory&cache=shared"))

	first := models.User{Name: "A", Email: "dup@example.edu"}
	require.NoError(t, DB.Create(&first).Error)

	second := models.User{Name: "B", Email: "dup@example.edu"}
	err := DB.Create(&second).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err), "unique violation should classify as duplicate key: %v", err)

	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("connection refused")))

	// The postgres driver reports duplicates with its own phrasing.
	assert.True(t, IsDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email"`)))
}
