package database

import (
	"testing"

	"tapcard/internal/config"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	assert.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestConfigurePool_Defaults(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	assert.NoError(t, configurePool(db, &config.Config{}))

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	assert.Equal(t, 25, sqlDB.Stats().MaxOpenConnections)
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		runSQL  bool
		runAuto bool
		wantErr bool
	}{
		{"Hybrid in development", &config.Config{Env: "development", DBSchemaMode: "hybrid"}, true, true, false},
		{"Hybrid in production", &config.Config{Env: "production", DBSchemaMode: "hybrid"}, true, false, false},
		{"Empty mode defaults to hybrid", &config.Config{Env: "development"}, true, true, false},
		{"SQL only", &config.Config{Env: "production", DBSchemaMode: "sql"}, true, false, false},
		{"Auto in development", &config.Config{Env: "development", DBSchemaMode: "auto"}, false, true, false},
		{"Auto in production refused", &config.Config{Env: "production", DBSchemaMode: "auto"}, false, false, true},
		{"Auto in production with override", &config.Config{Env: "production", DBSchemaMode: "auto", DBAutoMigrateAllowDestructive: true}, false, true, false},
		{"Unknown mode", &config.Config{Env: "development", DBSchemaMode: "yolo"}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runSQL, runAuto, err := schemaPolicy(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.runSQL, runSQL)
			assert.Equal(t, tt.runAuto, runAuto)
		})
	}
}

func TestRegisteredMigrations(t *testing.T) {
	ms := GetMigrations()
	assert.NotEmpty(t, ms)

	for i, m := range ms {
		assert.NotEmpty(t, m.UpScript, "migration %d missing up script", m.Version)
		assert.NotEmpty(t, m.DownScript, "migration %d missing down script", m.Version)
		if i > 0 {
			assert.Greater(t, m.Version, ms[i-1].Version)
		}
	}
}
