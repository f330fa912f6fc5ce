package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const sqliteDialect = "sqlite3"

// gooseLogger routes goose output through zap.
type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.log.Fatalf(format, v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.log.Infof(format, v...) }

// Up runs all pending SQL migrations found in migrationsDir.
func Up(db *sql.DB, migrationsDir string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	goose.SetLogger(gooseLogger{log: log.Sugar().Named("goose")})

	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}

// Version reports the current schema version.
func Version(db *sql.DB) (int64, error) {
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	v, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("read goose version: %w", err)
	}
	return v, nil
}
