// Package dbtest, testler için migrate edilmiş sqlite veritabanları verir.
package dbtest

import (
	"path/filepath"
	"testing"

	"attendance-backend/internal/config"
	"attendance-backend/internal/database"

	"gorm.io/gorm"
)

// New: tek bağlantılı bellek içi veritabanı
func New(t testing.TB) *gorm.DB {
	t.Helper()
	return open(t, ":memory:")
}

// NewFile: geçici dizinde dosya tabanlı veritabanı. Havuz birden fazla
// bağlantı açar, eşzamanlı yazma testleri bunu kullanır.
func NewFile(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "attendance.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	return open(t, dsn)
}

func open(t testing.TB, dsn string) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.Config{DBDriver: "sqlite", DatabaseDSN: dsn})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
