package db

import (
	"fmt"
	"time"

	"seatime-backend/internal/domain/testimonial"
	"seatime-backend/internal/domain/vessel"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// OpenGorm opens the configured driver. debug turns on gorm's SQL logging.
func OpenGorm(driver, dsn string, debug bool, log logrus.FieldLogger) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case DriverMySQL:
		dial = mysql.Open(dsn)
	case DriverSQLite:
		dial = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return openGorm(dial, level, log)
}

// OpenGormWithDialector opens an already-built dialector (tests inject sqlmock through it).
func OpenGormWithDialector(dial gorm.Dialector, log logrus.FieldLogger) (*gorm.DB, error) {
	return openGorm(dial, logger.Warn, log)
}

func openGorm(dial gorm.Dialector, level logger.LogLevel, log logrus.FieldLogger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(level),
		// pinged below, after pool settings
		DisableAutomaticPing: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dial.Name() == DriverSQLite {
		// one writer; also keeps ":memory:" a single database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(30)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.WithField("driver", dial.Name()).Info("gorm: connected")
	return db, nil
}

// Migrate creates or updates the vessels and testimonials tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&vessel.Vessel{}, &testimonial.Testimonial{})
}
