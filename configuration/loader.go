package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"user-directory/database"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load layers defaults, the YAML file at path (if present) and environment overrides.
func Load(path string) (*Configuration, error) {
	con := Default()

	yamlFile, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read configuration %s: %w", path, err)
	}
	if err == nil {
		if err = yaml.Unmarshal(yamlFile, &con); err != nil {
			return nil, fmt.Errorf("parse configuration %s: %w", path, err)
		}
	}

	if err = env.Parse(&con); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if con.Database.Driver != database.DriverPostgres && con.Database.Driver != database.DriverSqlite {
		return nil, fmt.Errorf("unsupported database driver %q", con.Database.Driver)
	}
	return &con, nil
}
