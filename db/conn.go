// Package db opens the relational store and makes sure the schema exists
package db

import (
	"bitwise74/game-clips/internal/model"
	"bitwise74/game-clips/pkg/util"
	"errors"
	"fmt"
	"os"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const seedGamesMigration = "seed_games"

var ValidDrivers = []string{"sqlite", "postgres", "mysql"}

type Options struct {
	Driver string
	DSN    string

	// Icons of the games inserted the first time the database is set up
	SeedGames []string

	// Limits the pool, 0 means driver default. In-memory SQLite needs 1 so
	// every query sees the same database
	MaxOpenConns int
}

func New(o Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(o)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database, %w", o.Driver, err)
	}

	if o.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}

		sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	}

	if o.Driver == "sqlite" {
		// The DSN should already do this but a hand written DSN might not
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys, %w", err)
		}
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	if err := seedGames(db, o.SeedGames); err != nil {
		return nil, fmt.Errorf("failed to seed games, %w", err)
	}

	return db, nil
}

// Close releases the connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func dialectorFor(o Options) (gorm.Dialector, error) {
	if o.DSN == "" {
		return nil, errors.New("no database DSN provided")
	}

	switch o.Driver {
	case "sqlite":
		// If running in a docker container don't allow the sqlite file to be created.
		// The host should instead mount it using volumes
		if util.IsRunningInDocker() && !strings.HasPrefix(o.DSN, ":memory:") {
			path, _, _ := strings.Cut(strings.TrimPrefix(o.DSN, "file:"), "?")
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("SQLite database file %s not mounted, please use docker volumes to mount it", path)
			}
		}

		return sqlite.Open(o.DSN), nil
	case "postgres":
		return postgres.Open(o.DSN), nil
	case "mysql":
		return mysql.Open(o.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", o.Driver)
	}
}

// seedGames inserts the reference games once. Later changes to the seed list
// are not applied, games are managed out of band after the first start
func seedGames(db *gorm.DB, icons []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var applied int64

		err := tx.Model(model.Migration{}).
			Where("name = ?", seedGamesMigration).
			Count(&applied).
			Error
		if err != nil {
			return err
		}

		if applied > 0 {
			return nil
		}

		for _, icon := range icons {
			if icon == "" {
				continue
			}

			err := tx.Where(model.Game{Icons: icon}).FirstOrCreate(&model.Game{}).Error
			if err != nil {
				return err
			}
		}

		return tx.Create(&model.Migration{Name: seedGamesMigration}).Error
	})
}
