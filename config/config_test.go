package config

import (
	"path/filepath"
	"testing"

	"github.com/nusantaramc/cms/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "DB_DRIVER", "UPLOAD_DIR", "CORS_ALLOWED_ORIGINS", "JWT_SECRET", "BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, defaultAllowedOrigins, cfg.AllowedOrigins)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("BASE_URL", "https://api.nusantaramc.org/")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("GIN_MODE", "release")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "https://api.nusantaramc.org", cfg.BaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.AuthEnabled())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongodb")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("GIN_MODE", "verbose")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestInitDatabaseSQLite(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "cms.db")}

	db, err := InitDatabase(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	for _, model := range []any{&models.Event{}, &models.About{}, &models.HomeContent{}, &models.Category{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}
