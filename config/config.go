package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults for a crawl run. Each adapter gets its own rate window so a slow
// or heavy source cannot eat into another source's budget.
const (
	DefaultDataFile     = "data/news.json"
	DefaultMaxItems     = 500
	DefaultWorkers      = 5
	DefaultRateCalls    = 10
	DefaultRateWindow   = time.Minute
	DefaultFetchTimeout = 30 * time.Second

	// DefaultSimilarityThreshold is the minimum title similarity ratio for
	// two items to be treated as fuzzy duplicates.
	DefaultSimilarityThreshold = 0.85
)

// Config carries all runtime settings. Everything is optional except the
// data file path; unset integrations (S3, Kafka, Redis, LinkedIn) disable
// the corresponding feature.
type Config struct {
	DataFile            string
	MaxItems            int
	Workers             int
	RateCalls           int
	RateWindow          time.Duration
	FetchTimeout        time.Duration
	SimilarityThreshold float64

	// Optional S3 mirror of the corpus snapshot.
	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Key          string
	S3UsePathStyle bool

	// Optional Kafka announce topic for newly added items.
	KafkaBrokers []string
	KafkaTopic   string

	// Optional Redis bloom filter guarding the announce path.
	RedisAddr     string
	RedisPassword string
	BloomKey      string
	BloomTTL      time.Duration

	// LinkedIn adapter credentials; the adapter disables itself without them.
	LinkedInEmail    string
	LinkedInPassword string
}

// Load builds a Config from environment variables, falling back to defaults.
// Callers are expected to have run godotenv.Load first.
func Load() Config {
	cfg := Config{
		DataFile:            EnvOrDefault("DATA_FILE", DefaultDataFile),
		MaxItems:            envInt("MAX_ITEMS", DefaultMaxItems),
		Workers:             envInt("CRAWL_WORKERS", DefaultWorkers),
		RateCalls:           envInt("RATE_LIMIT_CALLS", DefaultRateCalls),
		RateWindow:          envSeconds("RATE_LIMIT_WINDOW_SECONDS", DefaultRateWindow),
		FetchTimeout:        envSeconds("FETCH_TIMEOUT_SECONDS", DefaultFetchTimeout),
		SimilarityThreshold: envFloat("SIMILARITY_THRESHOLD", DefaultSimilarityThreshold),

		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Key:          EnvOrDefault("S3_KEY", "news.json"),
		S3UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),

		KafkaTopic: EnvOrDefault("KAFKA_TOPIC", "invoiceradar.items"),

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASS"),
		BloomKey:      EnvOrDefault("BLOOM_KEY", "invoiceradar:announced"),
		BloomTTL:      envSeconds("BLOOM_TTL_SECONDS", 30*24*time.Hour),

		LinkedInEmail:    os.Getenv("LINKEDIN_EMAIL"),
		LinkedInPassword: os.Getenv("LINKEDIN_PASSWORD"),
	}

	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg
}

// EnvOrDefault returns the value of the environment variable or a fallback.
func EnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			return f
		}
	}
	return fallback
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
