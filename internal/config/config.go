package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv       string `mapstructure:"APP_ENV"`
	Port         string `mapstructure:"PORT"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DBName       string `mapstructure:"DB_NAME"`
	PublicDomain string `mapstructure:"PUBLIC_DOMAIN"`
	CORSOrigins  string `mapstructure:"CORS_ORIGINS"`
	RedisURL     string `mapstructure:"REDIS_URL"`
	GeoAPIURL    string `mapstructure:"GEO_API_URL"`
}

func LoadConfig() (config Config, err error) {
	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DB_NAME", "novaurl")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PUBLIC_DOMAIN", "localhost:3000")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("GEO_API_URL", "http://ip-api.com/json")

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	// The store name doubles as the default sqlite file when no
	// connection string is set.
	if config.DatabaseURL == "" {
		config.DatabaseURL = "sqlite://" + config.DBName + ".db"
	}

	return
}

// AllowedOrigins splits CORS_ORIGINS into its comma-separated entries.
func (c Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
