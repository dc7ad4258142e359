package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

type Migrator func(db *gorm.DB) error

type Config struct {
	driver     string
	dsn        string
	debug      bool
	migrations []Migrator
}

type Configurator func(c *Config)

func SetDriver(driver string) Configurator {
	return func(c *Config) {
		c.driver = driver
	}
}

func SetDSN(dsn string) Configurator {
	return func(c *Config) {
		c.dsn = dsn
	}
}

func SetDebug(debug bool) Configurator {
	return func(c *Config) {
		c.debug = debug
	}
}

func SetMigrations(migrations ...Migrator) Configurator {
	return func(c *Config) {
		c.migrations = append(c.migrations, migrations...)
	}
}

func Connect(l logrus.FieldLogger, configurators ...Configurator) (*gorm.DB, error) {
	c := &Config{driver: DriverSqlite, dsn: ":memory:"}
	for _, configurator := range configurators {
		configurator(c)
	}

	var dialector gorm.Dialector
	switch c.driver {
	case DriverPostgres:
		dialector = postgres.Open(c.dsn)
	case DriverSqlite:
		dialector = sqlite.Open(c.dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.driver)
	}

	gc := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
	if c.debug {
		gc.Logger = logger.Default.LogMode(logger.Info)
	}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= 5; attempt++ {
		db, err = gorm.Open(dialector, gc)
		if err == nil {
			break
		}
		l.WithError(err).Warnf("Unable to connect to %s database, attempt %d.", c.driver, attempt)
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", c.driver, err)
	}

	if c.driver == DriverSqlite {
		// sqlite serializes writers; a single connection also keeps :memory: databases coherent.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	for _, m := range c.migrations {
		if err = m(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}
	l.Infof("Connected to %s database.", c.driver)
	return db, nil
}

func Teardown(l logrus.FieldLogger, db *gorm.DB) func() {
	return func() {
		sqlDB, err := db.DB()
		if err != nil {
			l.WithError(err).Errorf("Unable to retrieve database handle.")
			return
		}
		if err = sqlDB.Close(); err != nil {
			l.WithError(err).Errorf("Unable to close database connection.")
		}
	}
}
