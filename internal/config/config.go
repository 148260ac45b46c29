package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env-default:"local"`
	Postgres   Postgres   `yaml:"postgres"`
	Server     Server     `yaml:"server" env-required:"true"`
	Auth       Auth       `yaml:"auth" env-required:"true"`
	Mail       Mail       `yaml:"mail"`
	Storage    Storage    `yaml:"storage"`
	Migrations Migrations `yaml:"migrations"`
}

type Postgres struct {
	Username        string        `env:"POSTGRES_USER" env-required:"true"`
	Password        string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yaml:"host" env-required:"true"`
	Port            string        `env:"POSTGRES_PORT" env-required:"true"`
	Database        string        `env:"POSTGRES_DB" env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"50"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env-default:"1m"`
}

// URL builds the connection string without driver-specific query
// parameters; callers append their own.
func (p Postgres) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		p.Username, p.Password, p.Host, p.Port, p.Database,
	)
}

type Server struct {
	Host    string        `yaml:"host" env-default:"localhost"`
	Port    string        `yaml:"port" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

type Auth struct {
	Secret     string        `env:"JWT_SECRET" env-required:"true"`
	AccessTTL  time.Duration `yaml:"access_ttl" env-default:"30m"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" env-default:"168h"`
	ResetTTL   time.Duration `yaml:"reset_ttl" env-default:"15m"`
}

type Mail struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port" env-default:"587"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`
	From     string `yaml:"from"`
	ResetURL string `yaml:"reset_url"`
}

type Storage struct {
	UploadDir string `yaml:"upload_dir" env-default:"uploads"`
	BaseURL   string `yaml:"base_url" env-default:"/static"`
}

type Migrations struct {
	Path  string `yaml:"path" env:"MIGRATIONS_PATH" env-default:"migrations"`
	Table string `yaml:"table" env:"MIGRATIONS_TABLE" env-default:"schema_migrations"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	return cfg
}
