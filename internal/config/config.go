package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	SocketURL  string
	Email      string
	Password   string
}

func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		SocketURL:  getEnv("SOCKET_URL", "ws://localhost:8080/ws"),
		Email:      getEnv("CHAT_EMAIL", ""),
		Password:   getEnv("CHAT_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
