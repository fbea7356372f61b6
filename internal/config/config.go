package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server Server `yaml:"server"`

	Database Database `yaml:"database"`

	Redis Redis `yaml:"redis"`

	JWT JWT `yaml:"jwt"`

	Auth Auth `yaml:"auth"`
}

type Server struct {
	Address string `yaml:"address"`
}

type JWT struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"` // In Hours
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Auth configures the session cookie and the path guard in front of the
// dashboard pages.
type Auth struct {
	CookieName        string   `yaml:"cookie_name"`
	LoginPath         string   `yaml:"login_path"`
	DashboardPath     string   `yaml:"dashboard_path"`
	ProtectedPrefixes []string `yaml:"protected_prefixes"`
	ExemptPrefixes    []string `yaml:"exempt_prefixes"`
}

func Load() (*Config, error) {
	// A .env file is optional; real env vars win either way.
	_ = godotenv.Load()

	configPath := "configs/development.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

// applyEnv lets deployment secrets override the yaml file.
func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.DBName = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.JWT.ExpiresIn == 0 {
		c.JWT.ExpiresIn = 24
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "auth-token"
	}
	if c.Auth.LoginPath == "" {
		c.Auth.LoginPath = "/login"
	}
	if c.Auth.DashboardPath == "" {
		c.Auth.DashboardPath = "/dashboard"
	}
	if len(c.Auth.ProtectedPrefixes) == 0 {
		c.Auth.ProtectedPrefixes = []string{"/dashboard"}
	}
	if len(c.Auth.ExemptPrefixes) == 0 {
		c.Auth.ExemptPrefixes = []string{"/api/auth", "/static"}
	}
}
