package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the configuration from environment variables. A .env file is
// applied first when present so local runs do not need an exported
// environment.
func Load() *Configs {
	godotenv.Load()

	return &Configs{
		Env: getEnv("ENV", "local"),
		Database: DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "pointpass"),
			User:     getEnv("MYSQL_USER", "pointpass"),
			Password: getEnv("MYSQL_PASSWORD", ""),
		},
		ApiServer: ServerConfigs{
			Host:         getEnv("API_HOST", "localhost"),
			Port:         getEnv("API_PORT", "8080"),
			Cert:         getEnv("API_CERT", ""),
			Key:          getEnv("API_KEY", ""),
			DefaultLimit: getIntEnv("API_DEFAULT_LIMIT", 10),
			MaxLimit:     getIntEnv("API_MAX_LIMIT", 50),
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Secret:     getEnv("TOKEN_SECRET", "token_secret"),
				Expiration: getDurationEnv("TOKEN_EXPIRATION", time.Hour*24*7),
			},
			IdentityToken: TokenConfigs{
				Name:   "identity_token",
				Secret: getEnv("IDENTITY_TOKEN_SECRET", ""),
			},
		},
		Redis: RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Twitter: TwitterConfigs{
			BearerToken:    getEnv("TWITTER_BEARER_TOKEN", ""),
			AccountID:      getEnv("TWITTER_ACCOUNT_ID", ""),
			OfficialHandle: getEnv("TWITTER_USERNAME", "pointpass"),
			IOAPIKey:       getEnv("TWITTERAPI_IO_API_KEY", ""),
			APIEndpoint:    getEnv("TWITTER_API_ENDPOINT", "https://api.twitter.com/2"),
			IOAPIEndpoint:  getEnv("TWITTERAPI_IO_ENDPOINT", "https://api.twitterapi.io"),
		},
		Catalog: CatalogConfigs{
			File: getEnv("CATALOG_FILE", ""),
		},
	}
}

func getEnv(key, def string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return def
}

func getIntEnv(key string, def int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}

	return n
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}

	return d
}
