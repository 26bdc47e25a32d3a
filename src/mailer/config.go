package main

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/defi-mexico/platform-backend/src/api/types"
)

type mailerConfig struct {
	RedisURL     string
	MailEndpoint string
	MailAPIKey   string
	MailFrom     string
}

func loadConfig() mailerConfig {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "defimx:defimx@tcp(127.0.0.1:3306)/defimexico"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	settings := map[string]string{}
	var rows []types.Setting
	if err := db.Find(&rows).Error; err != nil {
		log.Printf("Failed to load settings: %v", err)
	}
	for _, s := range rows {
		settings[s.Name] = s.Value
	}

	pick := func(name, envKey, def string) string {
		if v := settings[name]; v != "" {
			return v
		}
		if v := os.Getenv(envKey); v != "" {
			return v
		}
		return def
	}

	cfg := mailerConfig{
		RedisURL:     getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		MailEndpoint: pick("mail_endpoint", "MAIL_ENDPOINT", ""),
		MailAPIKey:   pick("mail_api_key", "MAIL_API_KEY", ""),
		MailFrom:     pick("mail_from", "MAIL_FROM", "no-reply@defimexico.org"),
	}
	if cfg.MailEndpoint == "" {
		log.Fatal("mail_endpoint not set in database or environment")
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}
