package config

import (
	"strings"

	"remate/internal/infrastructure/database"

	"github.com/spf13/viper"
)

const (
	ConverterCommand = "command"
	ConverterChrome  = "chrome"
	ConverterNone    = "none"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env            string
	Host           string
	Port           string
	DBPath         string
	LogLevel       string
	LogFormat      string // console or json
	RedisURL       string // empty disables traffic counters
	HealthAdminKey string
	AllowedOrigins []string
	PDFConverter   string // command, chrome or none
	PDFCommand     string
	PDFScript      string
}

// Load loads config from env and an optional .env file in the working
// directory.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file. Environment variables take
// precedence over the file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HOST", "127.0.0.1")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REMATE_DB_PATH", database.DefaultPath)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("PDF_CONVERTER", ConverterCommand)
	v.SetDefault("PDF_COMMAND", "node")
	v.SetDefault("PDF_SCRIPT", "convertToPdf.js")

	return &Config{
		Env:            v.GetString("APP_ENV"),
		Host:           v.GetString("HOST"),
		Port:           v.GetString("PORT"),
		DBPath:         v.GetString("REMATE_DB_PATH"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
		RedisURL:       v.GetString("REDIS_URL"),
		HealthAdminKey: v.GetString("HEALTH_ADMIN_KEY"),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		PDFConverter:   strings.ToLower(v.GetString("PDF_CONVERTER")),
		PDFCommand:     v.GetString("PDF_COMMAND"),
		PDFScript:      v.GetString("PDF_SCRIPT"),
	}, nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
