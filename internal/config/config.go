package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	JWTSecret     string
	SweepInterval time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "tradebinder.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./tradebinder.log"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Println("[config] JWT_SECRET not set, using insecure dev default")
	}
	sweep := time.Hour
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			sweep = d
		} else {
			log.Printf("[config] bad SWEEP_INTERVAL %q, keeping %s", v, sweep)
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, JWTSecret: secret, SweepInterval: sweep}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s SWEEP_INTERVAL=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.SweepInterval)
	return cfg
}
