package config

import "github.com/caarlos0/env/v11"

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type App struct {
	Addr        string `env:"APP_ADDR" envDefault:":8080"`
	BasePath    string `env:"APP_BASE_PATH"`
	Development bool   `env:"DEVELOPMENT"`
	Storage     string `env:"STORAGE" envDefault:"postgres"`
}

func NewApp() (*App, error) {
	app, err := env.ParseAs[App]()
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Development is checked before anything else is loaded to pick the
// logger, so it does not fail on unrelated missing variables.
func Development() bool {
	var cfg struct {
		Development bool `env:"DEVELOPMENT"`
	}
	if err := env.Parse(&cfg); err != nil {
		return false
	}
	return cfg.Development
}
