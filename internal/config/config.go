package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Worker   WorkerConfig
	Backend  BackendConfig
	Portal   PortalConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	LogLevel        string // silent, error, warn or info; empty picks one by ENV
	SlowQuery       time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey string
}

type WorkerConfig struct {
	Concurrency int
}

// BackendConfig drives the development backend.
type BackendConfig struct {
	// Recommender is "catalog" or "vector".
	Recommender         string
	RecommendationLimit int
	CatalogPath         string
}

// PortalConfig drives the portal service.
type PortalConfig struct {
	Port            string
	APIBaseURL      string
	APITimeout      time.Duration
	// Recommender is "static", "api" or "vector".
	Recommender     string
	AuthDelay       time.Duration
	RecommendDelay  time.Duration
	RedisURL        string
	SessionTTL      time.Duration
	HealthCheckSpec string
	PublicURL       string
	// ScoreThresholds are the excellent, good and fair lower bounds.
	ScoreThresholds []float64
	AdminPageSize   int
	SaveProfiles    bool
	CORSOrigins     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3001"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "internship_ai"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),

			LogLevel:        getEnv("DB_LOG_LEVEL", ""),
			SlowQuery:       getEnvAsDuration("DB_SLOW_QUERY", "200ms"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "30m"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6334"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "internships"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 3),
		},
		Backend: BackendConfig{
			Recommender:         getEnv("BACKEND_RECOMMENDER", "catalog"),
			RecommendationLimit: getEnvAsInt("RECOMMENDATION_LIMIT", 10),
			CatalogPath:         getEnv("INTERNSHIP_CATALOG", ""),
		},
		Portal: PortalConfig{
			Port:            getEnv("PORTAL_PORT", "8080"),
			APIBaseURL:      strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3001/api"), "/"),
			APITimeout:      getEnvAsDuration("API_TIMEOUT", "30s"),
			Recommender:     getEnv("RECOMMENDER", "static"),
			AuthDelay:       getEnvAsDuration("AUTH_DELAY", "1.5s"),
			RecommendDelay:  getEnvAsDuration("RECOMMEND_DELAY", "2s"),
			RedisURL:        getEnv("REDIS_URL", ""),
			SessionTTL:      getEnvAsDuration("SESSION_TTL", "24h"),
			HealthCheckSpec: getEnv("HEALTH_CHECK_SPEC", "@every 30s"),
			PublicURL:       strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
			ScoreThresholds: getEnvAsFloats("MATCH_SCORE_THRESHOLDS", "90,75,60"),
			AdminPageSize:   getEnvAsInt("ADMIN_PAGE_SIZE", 20),
			SaveProfiles:    getEnvAsBool("SAVE_PROFILES", true),
			CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		},
	}
}

// Validate reports settings that would make the services misbehave.
func (c *Config) Validate() error {
	var errs []error

	switch c.Portal.Recommender {
	case "static", "api", "vector":
	default:
		errs = append(errs, fmt.Errorf("RECOMMENDER must be static, api or vector, got %q", c.Portal.Recommender))
	}
	switch c.Backend.Recommender {
	case "catalog", "vector":
	default:
		errs = append(errs, fmt.Errorf("BACKEND_RECOMMENDER must be catalog or vector, got %q", c.Backend.Recommender))
	}

	t := c.Portal.ScoreThresholds
	if len(t) != 3 {
		errs = append(errs, fmt.Errorf("MATCH_SCORE_THRESHOLDS needs three values, got %d", len(t)))
	} else if !(t[0] > t[1] && t[1] > t[2]) {
		errs = append(errs, fmt.Errorf("MATCH_SCORE_THRESHOLDS must be descending, got %v", t))
	}

	if c.Portal.AdminPageSize < 1 {
		errs = append(errs, fmt.Errorf("ADMIN_PAGE_SIZE must be positive, got %d", c.Portal.AdminPageSize))
	}
	if _, err := c.Database.GormLogLevel(c.Server.Env); err != nil {
		errs = append(errs, err)
	}
	if c.Database.MaxOpenConns < 1 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, fmt.Errorf("DB_MAX_IDLE_CONNS (%d) must not exceed a positive DB_MAX_OPEN_CONNS (%d)", c.Database.MaxIdleConns, c.Database.MaxOpenConns))
	}
	if c.Worker.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("WORKER_CONCURRENCY must be positive, got %d", c.Worker.Concurrency))
	}

	return errors.Join(errs...)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

// getEnvAsFloats parses a comma separated list. Any malformed entry makes
// the whole value fall back to defaultValue.
func getEnvAsFloats(key string, defaultValue string) []float64 {
	if values, err := parseFloats(getEnv(key, defaultValue)); err == nil {
		return values
	}
	values, _ := parseFloats(defaultValue)
	return values
}

func parseFloats(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
