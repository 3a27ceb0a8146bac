package config

import (
	"log"
	"os"
	"strings"
)

type Config struct {
	HTTPPort       string
	BackendBaseURL string // uzak POS backend'inin kök adresi (ör: https://suitsadmin.onrender.com/api)
	DatabaseDSN    string // yerel oturum/audit veritabanı (sqlite dosyası veya postgres DSN)
	CORSOrigins    string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", ""),
		DatabaseDSN:    getEnv("DATABASE_DSN", "suitsadmin.db"),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	// Production güvenlik kontrolleri
	if cfg.BackendBaseURL == "" {
		log.Fatal("[FATAL] BACKEND_BASE_URL environment değişkeni tanımlanmamış! Gateway backend olmadan çalışamaz.")
	}
	cfg.BackendBaseURL = strings.TrimRight(cfg.BackendBaseURL, "/")
	if !strings.HasPrefix(cfg.BackendBaseURL, "https://") && !strings.HasPrefix(cfg.BackendBaseURL, "http://") {
		log.Fatal("[FATAL] BACKEND_BASE_URL 'http://' veya 'https://' ile başlamalı.")
	}
	if cfg.DatabaseDSN == "suitsadmin.db" {
		log.Println("[WARN] DATABASE_DSN varsayılan sqlite dosyası kullanılıyor, production için kalıcı bir yol tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
