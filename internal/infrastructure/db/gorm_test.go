package db

import (
	"errors"
	"testing"

	"seatime-backend/internal/domain/testimonial"
	"seatime-backend/internal/domain/vessel"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"gorm.io/driver/mysql"
)

func quietLogger() logrus.FieldLogger {
	l, _ := logtest.NewNullLogger()
	return l
}

func TestOpenGormWithDialector_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing()

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	})

	log, hook := logtest.NewNullLogger()
	gdb, err := OpenGormWithDialector(dial, log)
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	if gdb == nil {
		t.Fatalf("got nil gorm.DB")
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.InfoLevel || entry.Data["driver"] != "mysql" {
		t.Fatalf("connect not logged through the given logger: %+v", entry)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("no ping"))

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	log, hook := logtest.NewNullLogger()
	gdb, err := OpenGormWithDialector(dial, log)
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("failed connect must not log success")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGorm_UnknownDriver(t *testing.T) {
	if _, err := OpenGorm("postgres", "host=x", false, quietLogger()); err == nil {
		t.Fatal("expected unsupported driver error")
	}
}

func TestOpenGorm_SQLiteAndMigrate(t *testing.T) {
	gdb, err := OpenGorm(DriverSQLite, "file::memory:?cache=shared", false, quietLogger())
	if err != nil {
		t.Fatalf("OpenGorm sqlite: %v", err)
	}
	sqlDB, _ := gdb.DB()
	defer sqlDB.Close()

	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	for _, model := range []any{&vessel.Vessel{}, &testimonial.Testimonial{}} {
		if !gdb.Migrator().HasTable(model) {
			t.Fatalf("table for %T missing", model)
		}
	}
	if !gdb.Migrator().HasIndex(&testimonial.Testimonial{}, "SignoffToken") {
		t.Fatal("unique index on signoff_token missing")
	}
	// idempotent
	if err := Migrate(gdb); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
