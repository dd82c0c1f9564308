package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Database Database `yaml:"database"`

	Auth Auth `yaml:"auth"`

	Session Session `yaml:"session"`

	Bridge Bridge `yaml:"bridge"`
}

type Database struct {
	Path string `yaml:"path" validate:"required"`
}

type Auth struct {
	// BcryptCost applies when seeding the default admin user
	BcryptCost           int    `yaml:"bcrypt_cost" validate:"min=4,max=31"`
	DefaultAdminPassword string `yaml:"default_admin_password" validate:"required"`
}

type Session struct {
	TimeoutMinutes int    `yaml:"timeout_minutes" validate:"min=1"`
	StorageDir     string `yaml:"storage_dir"`
}

type Bridge struct {
	URL    string `yaml:"url" validate:"required,uri"`
	Secret string `yaml:"secret" validate:"required"`
	// ClientID identifies this terminal in the bearer token subject
	ClientID        string `yaml:"client_id"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" validate:"min=1"`
}

func Load() (*Config, error) {
	configPath := "configs/development.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a config populated with the documented defaults;
// Load overlays the yaml file on top of it.
func Default() *Config {
	return &Config{
		Database: Database{
			Path: "inventory.db",
		},
		Auth: Auth{
			BcryptCost:           10,
			DefaultAdminPassword: "1",
		},
		Session: Session{
			TimeoutMinutes: 15,
			StorageDir:     ".anpos",
		},
		Bridge: Bridge{
			ClientID:        "pos-terminal",
			TokenTTLMinutes: 60,
		},
	}
}

// Validate checks the struct tags after decode
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
