package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID            string
	LogLevel             string
	Port                 string
	FirebaseAPIKey       string
	FirebaseAPIKeySecret string
	AllowedOrigin        string
}

// New reads the environment. A .env file in the working directory is loaded
// first when present; variables already set win.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		ProjectID:            os.Getenv("PROJECTID"),
		LogLevel:             os.Getenv("LOGLEVEL"),
		Port:                 getOrDefault("PORT", "8080"),
		FirebaseAPIKey:       os.Getenv("FIREBASEAPIKEY"),
		FirebaseAPIKeySecret: getOrDefault("FIREBASEAPIKEYSECRET", "firebaseApiKey"),
		AllowedOrigin:        os.Getenv("ALLOWEDORIGIN"),
	}
}

func getOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
