package roster

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/roster/migrations"
)

// migrationLogger adapts zap to the migrate.Logger interface
type migrationLogger struct {
	logger *zap.Logger
}

func (l migrationLogger) Printf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l migrationLogger) Verbose() bool {
	return l.logger.Core().Enabled(zap.DebugLevel)
}

// migrateUp applies the embedded migrations. The migrate instance is not
// closed since that would close db.
func migrateUp(db *sqlx.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return errors.Wrap(err, "read migrations")
	}

	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return errors.Wrap(err, "prepare migrations")
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return errors.Wrap(err, "prepare migrations")
	}
	m.Log = migrationLogger{logger: logger}

	before, _, _ := m.Version()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		version, dirty, _ := m.Version()
		logger.Error("roster migration failed",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
			zap.Error(err),
		)
		return errors.Wrap(err, "apply migrations")
	}

	after, _, _ := m.Version()
	if after != before {
		logger.Info("roster migrations applied", zap.Uint("from", before), zap.Uint("to", after))
	}
	return nil
}
