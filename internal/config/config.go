package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "MOVIES_ETL_CONFIG"
	apiKeyEnv       = "TMDB_API_KEY"
	apiBaseURLEnv   = "TMDB_API_URL"
	dbUserEnv       = "DATABASE_USER"
	dbPasswordEnv   = "DATABASE_PASSWORD"
	dbNameEnv       = "DATABASE_NAME"
	dbHostEnv       = "DATABASE_HOST"
	dbPortEnv       = "DATABASE_PORT"
	logLevelEnv     = "LOG_LEVEL"
	defaultPages    = 15
	defaultFromYear = 2010
)

// Config holds high-level settings required across the application.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	Output   OutputConfig   `yaml:"output"`
	Report   ReportConfig   `yaml:"report"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// APIConfig describes how to reach the movie catalog.
type APIConfig struct {
	BaseURL  string        `yaml:"baseUrl"`
	APIKey   string        `yaml:"apiKey"`
	Language string        `yaml:"language"`
	Pages    int           `yaml:"pages"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	SSLMode  string `yaml:"sslMode"`
	Table    string `yaml:"table"`
}

// DSN renders a postgres:// URL with escaped credentials.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

// OutputConfig sets where raw dumps and charts are written.
type OutputConfig struct {
	DataDir  string `yaml:"dataDir"`
	PlotDir  string `yaml:"plotDir"`
	FromYear int    `yaml:"fromYear"`
}

// ReportConfig tunes chart rendering.
type ReportConfig struct {
	FontPath string `yaml:"fontPath"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration from path (or $MOVIES_ETL_CONFIG when path
// is empty), then applies environment overrides. A missing or unreadable
// file is an error only when a path was given explicitly.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(configPathEnv)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err != nil && (explicit || !errors.Is(err, os.ErrNotExist)):
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		case err == nil:
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that would make a full run fail later.
func (c Config) Validate() error {
	return joinProblems(append(c.apiProblems(), c.databaseProblems()...))
}

// ValidateAPI checks only what the extract stage needs.
func (c Config) ValidateAPI() error {
	return joinProblems(c.apiProblems())
}

// ValidateDatabase checks only what the report stage needs.
func (c Config) ValidateDatabase() error {
	return joinProblems(c.databaseProblems())
}

func (c Config) apiProblems() []string {
	var problems []string
	if strings.TrimSpace(c.API.APIKey) == "" {
		problems = append(problems, "api.apiKey (or "+apiKeyEnv+") is required")
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		problems = append(problems, "api.baseUrl is required")
	}
	if c.API.Pages <= 0 {
		problems = append(problems, "api.pages must be positive")
	}
	return problems
}

func (c Config) databaseProblems() []string {
	var problems []string
	if strings.TrimSpace(c.Database.Name) == "" {
		problems = append(problems, "database.name is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		problems = append(problems, "database.port must be in 1..65535")
	}
	if !validIdentifier(c.Database.Table) {
		problems = append(problems, fmt.Sprintf("database.table %q is not a plain identifier", c.Database.Table))
	}
	return problems
}

func joinProblems(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}

func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(apiKeyEnv); v != "" {
		c.API.APIKey = v
	}
	if v := os.Getenv(apiBaseURLEnv); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(dbUserEnv); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv(dbPasswordEnv); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(dbNameEnv); v != "" {
		c.Database.Name = v
	}
	if v := os.Getenv(dbHostEnv); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv(dbPortEnv); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q is not a port: %w", dbPortEnv, v, err)
		}
		c.Database.Port = port
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	return nil
}

func mergeConfig(base, override Config) Config {
	if override.API.BaseURL != "" {
		base.API.BaseURL = override.API.BaseURL
	}
	if override.API.APIKey != "" {
		base.API.APIKey = override.API.APIKey
	}
	if override.API.Language != "" {
		base.API.Language = override.API.Language
	}
	if override.API.Pages != 0 {
		base.API.Pages = override.API.Pages
	}
	if override.API.Timeout != 0 {
		base.API.Timeout = override.API.Timeout
	}

	if override.Database.User != "" {
		base.Database.User = override.Database.User
	}
	if override.Database.Password != "" {
		base.Database.Password = override.Database.Password
	}
	if override.Database.Name != "" {
		base.Database.Name = override.Database.Name
	}
	if override.Database.Host != "" {
		base.Database.Host = override.Database.Host
	}
	if override.Database.Port != 0 {
		base.Database.Port = override.Database.Port
	}
	if override.Database.SSLMode != "" {
		base.Database.SSLMode = override.Database.SSLMode
	}
	if override.Database.Table != "" {
		base.Database.Table = override.Database.Table
	}

	if override.Output.DataDir != "" {
		base.Output.DataDir = override.Output.DataDir
	}
	if override.Output.PlotDir != "" {
		base.Output.PlotDir = override.Output.PlotDir
	}
	if override.Output.FromYear != 0 {
		base.Output.FromYear = override.Output.FromYear
	}

	if override.Report.FontPath != "" {
		base.Report.FontPath = override.Report.FontPath
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "https://api.themoviedb.org/3",
			Pages:   defaultPages,
			Timeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			User:    "postgres",
			Name:    "moviesdb",
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
			Table:   "movies",
		},
		Output: OutputConfig{
			DataDir:  "data",
			PlotDir:  "plots",
			FromYear: defaultFromYear,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
