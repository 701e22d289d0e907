package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"attendance-backend/internal/config"
	"attendance-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open: ayarlardaki sürücüye göre bağlantıyı açar ve havuzu yapılandırır
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.LogSQL {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB alınamadı: %w", err)
	}
	if isMemorySQLite(cfg.DBDriver, cfg.DatabaseDSN) {
		// ":memory:" her bağlantıda yeni bir veritabanı açar, tek bağlantıda kal
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

func isMemorySQLite(driver, dsn string) bool {
	return driver == "sqlite" && (strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory"))
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("desteklenmeyen DB_DRIVER: %q", driver)
	}
}

// Migrate: tabloları ve tekil indeksleri oluşturur
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Attendance{},
		&models.MonthSettings{},
	); err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}
	return nil
}

// Init: Open + Migrate, hata durumunda süreci durdurur
func Init(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	log.Printf("Veritabanı bağlantısı başarılı (%s). Migration tamamlandı.", cfg.DBDriver)
	return db
}
