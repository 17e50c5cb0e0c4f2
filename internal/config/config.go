package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config de la app: defaults -> archivo YAML (opcional) -> variables de entorno.
type Config struct {
	Backend struct {
		BaseURL string        `yaml:"base_url" env:"PETCARE_API_URL"`
		Timeout time.Duration `yaml:"timeout" env:"PETCARE_API_TIMEOUT"`
		RPS     float64       `yaml:"rps" env:"PETCARE_API_RPS"`
		Burst   int           `yaml:"burst" env:"PETCARE_API_BURST"`
	} `yaml:"backend"`

	Media struct {
		BaseURL     string `yaml:"base_url" env:"PETCARE_MEDIA_URL"`
		Placeholder string `yaml:"placeholder" env:"PETCARE_PLACEHOLDER"`
	} `yaml:"media"`

	Session struct {
		// TTL 0 desactiva la expiración.
		TTL     time.Duration `yaml:"ttl" env:"PETCARE_SESSION_TTL"`
		Sliding bool          `yaml:"sliding" env:"PETCARE_SESSION_SLIDING"`
	} `yaml:"session"`

	Storage struct {
		Driver    string `yaml:"driver" env:"PETCARE_STORAGE"` // memory|file|sqlite|postgres
		Path      string `yaml:"path" env:"PETCARE_STORAGE_PATH"`
		DSN       string `yaml:"dsn" env:"DB_DSN"`
		Namespace string `yaml:"namespace" env:"PETCARE_STORAGE_NAMESPACE"`
	} `yaml:"storage"`

	Server struct {
		Addr string `yaml:"addr" env:"PETCARE_ADDR"`
	} `yaml:"server"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
		App    string `yaml:"app" env:"APP_NAME"`
	} `yaml:"logging"`
}

// Load carga .env (si existe) y luego la configuración. configPath vacío
// usa PETCARE_CONFIG; si el archivo no existe se usan solo defaults + env.
func Load(configPath string) (*Config, error) {
	// .env es opcional
	_ = godotenv.Load()

	if strings.TrimSpace(configPath) == "" {
		configPath = os.Getenv("PETCARE_CONFIG")
	}

	cfg := &Config{}
	setDefaults(cfg)

	if strings.TrimSpace(configPath) != "" {
		b, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	cfg.derive()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(c *Config) {
	c.Backend.BaseURL = "http://localhost:8080/api/petcare"
	c.Backend.Timeout = 10 * time.Second
	c.Backend.RPS = 20
	c.Backend.Burst = 10

	c.Media.Placeholder = "/assets/pet-placeholder.png"

	c.Session.TTL = 30 * time.Minute
	c.Session.Sliding = true

	c.Storage.Driver = "file"
	c.Storage.Path = defaultStatePath("local.json")
	c.Storage.Namespace = "default"

	c.Server.Addr = "127.0.0.1:8090"

	c.Logging.Level = "info"
	c.Logging.Format = "text"
	c.Logging.App = "petcare"
}

// derive completa valores que dependen de otros.
func (c *Config) derive() {
	c.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(c.Backend.BaseURL), "/")
	if strings.TrimSpace(c.Media.BaseURL) == "" && c.Backend.BaseURL != "" {
		c.Media.BaseURL = c.Backend.BaseURL + "/uploads/"
	}
	if c.Storage.Driver == "sqlite" && strings.HasSuffix(c.Storage.Path, ".json") {
		c.Storage.Path = strings.TrimSuffix(c.Storage.Path, ".json") + ".db"
	}
}

func (c *Config) Validate() error {
	u, err := url.ParseRequestURI(c.Backend.BaseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("backend base_url must be an absolute url, got %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend timeout must be positive")
	}
	if c.Session.TTL < 0 {
		return errors.New("session ttl must be >= 0")
	}

	switch c.Storage.Driver {
	case "memory":
	case "file", "sqlite":
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("storage path is required for driver %q", c.Storage.Driver)
		}
	case "postgres":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return errors.New("storage dsn is required for driver postgres")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

func defaultStatePath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".petcare", name)
	}
	return filepath.Join(dir, "petcare", name)
}
