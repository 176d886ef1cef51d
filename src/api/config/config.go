package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	MySQLDSN     string
	RedisURL     string
	StoreBackend string

	Provider  string
	GrokKey   string
	OpenAIKey string
	Model     string
	BaseURL   string
	Temp      float64

	Port         string
	HistoryLimit int
	HTTPTimeout  time.Duration
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	limit, _ := strconv.Atoi(getenv("HISTORY_LIMIT", "10"))
	timeoutSecs, _ := strconv.Atoi(getenv("HTTP_TIMEOUT_SECONDS", "120"))
	temp, _ := strconv.ParseFloat(getenv("AI_TEMPERATURE", "1"), 64)
	return Config{
		MySQLDSN:     getenv("MYSQL_DSN", "retainbot:retainbot@tcp(127.0.0.1:3306)/retainbot?parseTime=true"),
		RedisURL:     os.Getenv("REDIS_URL"), // optional: empty disables turn events
		StoreBackend: getenv("STORE_BACKEND", "mysql"),
		Provider:     getenv("AI_PROVIDER", "grok"),
		GrokKey:      os.Getenv("XAI_API_KEY"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		Model:        os.Getenv("AI_MODEL"),
		BaseURL:      os.Getenv("AI_BASE_URL"),
		Temp:         temp,
		Port:         getenv("PORT", "5000"),
		HistoryLimit: limit,
		HTTPTimeout:  time.Duration(timeoutSecs) * time.Second,
	}
}
