package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/recipebook/backend/internal/database"
	"github.com/recipebook/backend/internal/models"
)

func TestMigrateSQLiteCreatesSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:migrate_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db, "does-not-matter-for-sqlite"))

	user := models.User{Email: "schema@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	recipe := models.Recipe{UserID: user.ID, Title: "Schema Check"}
	require.NoError(t, db.Create(&recipe).Error)

	token := models.AuthToken{UserID: user.ID, TokenID: user.ID}
	require.NoError(t, db.Create(&token).Error)

	// The uniqueness constraint on email is in place.
	dup := models.User{Email: "schema@example.com", PasswordHash: "y"}
	assert.Error(t, db.Create(&dup).Error)
}
