package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Firestore/Firebase project of the storefront.
	ProjectID string

	// Optional AMQP broker for order lifecycle events. Empty disables
	// publishing.
	RabbitURL string

	CORSAllowOrigins []string

	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, with a local .env file
// applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:             getenv("PORT", "8080"),
		ProjectID:        getenv("GOOGLE_CLOUD_PROJECT", ""),
		RabbitURL:        getenv("RABBITMQ_URL", ""),
		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),
		ShutdownTimeout:  parseDuration(getenv("SHUTDOWN_TIMEOUT", "5s"), 5*time.Second),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
