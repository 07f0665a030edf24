package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-booking/models"
	"hotel-booking/repository"
)

// SeedDatabase inserts the default catalog when the rooms table is empty.
func SeedDatabase(db *gorm.DB, lg log.Logger) error {
	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		level.Debug(lg).Log("msg", "rooms already seeded", "count", count)
		return nil
	}

	rooms := repository.DefaultRooms()
	if err := db.Create(&rooms).Error; err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	level.Info(lg).Log("msg", "rooms seeded", "count", len(rooms))
	return nil
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	// stay dates are stored as UTC midnights
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// DSN resolves the go-sql-driver connection string.
func (d DatabaseConfig) DSN() (string, error) {
	raw := strings.TrimSpace(d.URL)
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Pass, d.Host, d.Port, d.Name,
	), nil
}

// ConnectDatabase opens MySQL, migrates the booking tables and seeds the
// room catalog when enabled.
func ConnectDatabase(cfg DatabaseConfig, lg log.Logger) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}
	gormLogger := NewGormLogger(log.With(lg, "component", "gorm"), time.Second, logLevel)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(
		&models.Room{},
		&models.Reservation{},
		&models.ContactInquiry{},
	); err != nil {
		return nil, err
	}

	if cfg.Seed {
		if err := SeedDatabase(db, lg); err != nil {
			return nil, err
		}
	}
	return db, nil
}
