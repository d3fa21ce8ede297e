package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/akashkatakam/vehicle-sales-system/api"
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func loadConfig() models.Config {
	return models.Config{
		Port: envInt64("PORT", 8080),
		Env:  envStr("ENV", "development"),
		JWT: models.JWTConfig{
			SecretKey: envStr("JWT_SECRET", ""),
			Issuer:    envStr("JWT_ISSUER", "vehicle-sales-system"),
			Audience:  envStr("JWT_AUDIENCE", "vehicle-sales-system"),
			Algorithm: envStr("JWT_ALGORITHM", "HS256"),
			Expiry:    time.Duration(envInt64("JWT_EXPIRY_HOURS", 12)) * time.Hour,
			Refresh:   time.Duration(envInt64("JWT_REFRESH_HOURS", 24)) * time.Hour,
		},
		DB: models.DBConfig{
			DSN:    envStr("DSN", ""),
			DEVDSN: envStr("DEV_DSN", ""),
		},
		Approval: models.ApprovalConfig{
			Limit:        envFloat("DISCOUNT_APPROVAL_LIMIT", 1500),
			NotifyPhone:  envStr("APPROVAL_NOTIFY_PHONE", ""),
			NotifyActive: envBool("APPROVAL_NOTIFY_ACTIVE", false),
		},
	}
}

func main() {
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		infoLog.Println("no .env file found, relying on environment")
	}

	cfg := loadConfig()
	if cfg.JWT.SecretKey == "" {
		errorLog.Fatal("JWT_SECRET must be set")
	}

	dsn := cfg.DB.DSN
	if cfg.Env == "development" && cfg.DB.DEVDSN != "" {
		dsn = cfg.DB.DEVDSN
	}
	if dsn == "" {
		errorLog.Fatal("DSN must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		errorLog.Fatal("opening database pool: ", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		errorLog.Fatal("database unreachable: ", err)
	}
	infoLog.Println("database connection established")

	if err := api.Serve(cfg, pool, infoLog, errorLog); err != nil {
		errorLog.Fatal(err)
	}
}
