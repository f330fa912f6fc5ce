package config

import "github.com/spf13/viper"

const (
	defaultEnv        = "dev"
	defaultDBPath     = "./dev.db"
	defaultPort       = "8080"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	defaultCurrency   = "MXN"
	defaultTaxPercent = 16.0
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env               string
	AdminEmail        string
	AdminPassword     string
	SessionSecret     string
	DBPath            string
	Port              string
	LogLevel          string
	LogFormat         string
	MetricsEnabled    bool
	DefaultCurrency   string
	DefaultTaxPercent float64
}

// Load reads .env from the working directory, then the environment.
func Load() Config {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is not an error;
// production should use real env injection.
func LoadFrom(dotenvPath string) Config {
	_ = loadDotEnv(dotenvPath)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("db_path", defaultDBPath)
	v.SetDefault("port", defaultPort)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_format", defaultLogFormat)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("default_currency", defaultCurrency)
	v.SetDefault("default_tax_percent", defaultTaxPercent)

	cfg := Config{
		Env:               v.GetString("app_env"),
		AdminEmail:        v.GetString("admin_email"),
		AdminPassword:     v.GetString("admin_password"),
		SessionSecret:     v.GetString("session_secret"),
		DBPath:            v.GetString("db_path"),
		Port:              v.GetString("port"),
		LogLevel:          v.GetString("log_level"),
		LogFormat:         v.GetString("log_format"),
		MetricsEnabled:    v.GetBool("metrics_enabled"),
		DefaultCurrency:   v.GetString("default_currency"),
		DefaultTaxPercent: v.GetFloat64("default_tax_percent"),
	}

	if cfg.DefaultTaxPercent < 0 || cfg.DefaultTaxPercent >= 100 {
		cfg.DefaultTaxPercent = defaultTaxPercent
	}

	return cfg
}

// IsDev reports whether the app runs in a local development environment.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == "dev" || c.Env == "development"
}

// Warnings lists settings that are missing but not fatal.
func (c Config) Warnings() []string {
	var out []string
	if c.AdminEmail == "" {
		out = append(out, "ADMIN_EMAIL is not set")
	}
	if c.AdminPassword == "" {
		out = append(out, "ADMIN_PASSWORD is not set")
	}
	if c.SessionSecret == "" {
		out = append(out, "SESSION_SECRET is not set")
	}
	return out
}
