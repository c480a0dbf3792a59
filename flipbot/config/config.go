package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
)

type Config struct {
	Port       string
	LogDir     string
	PolicyFile string

	// Outbound lookups
	FetchTimeout   time.Duration
	SearchTimeout  time.Duration
	SearchURL      string
	SearchPerMin   int
	ScrapeMaxChars int
	ScrapeBrowser  bool

	// Text extraction tools
	PdfToTextPath string
	TesseractPath string
	MaxUploadMB   int64

	// Optional history store (disabled when DBHost is empty)
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Optional upload archive / scrape cache (disabled when MinIOEndpoint is empty)
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOSecure    bool
}

// LoadConfig reads the environment, after loading a .env file if one exists.
func LoadConfig() (Config, error) {
	// a missing .env is fine, the process environment is used as-is
	_ = godotenv.Load()

	cfg := Config{
		Port:       getEnv("PORT", "8000"),
		LogDir:     getEnv("LOG_DIR", "./logs"),
		PolicyFile: getEnv("POLICY_FILE", ""),

		FetchTimeout:   getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
		SearchTimeout:  getEnvAsDuration("SEARCH_TIMEOUT", 10*time.Second),
		SearchURL:      getEnv("SEARCH_URL", "https://www.google.com/search"),
		SearchPerMin:   getEnvAsInt("SEARCH_PER_MINUTE", 30),
		ScrapeMaxChars: getEnvAsInt("SCRAPE_MAX_CHARS", 2000),
		ScrapeBrowser:  getEnvAsBool("SCRAPE_BROWSER", false),

		PdfToTextPath: getEnv("PDFTOTEXT_PATH", "pdftotext"),
		TesseractPath: getEnv("TESSERACT_PATH", "tesseract"),
		MaxUploadMB:   int64(getEnvAsInt("MAX_UPLOAD_MB", 32)),

		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "flipbot"),
		MinIOSecure:    getEnvAsBool("MINIO_SECURE", false),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, eris.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late.
func (c Config) Validate() error {
	if c.Port == "" {
		return eris.New("PORT is required")
	}
	if c.ScrapeMaxChars <= 0 {
		return eris.Errorf("SCRAPE_MAX_CHARS must be positive, got %d", c.ScrapeMaxChars)
	}
	if c.SearchPerMin <= 0 {
		return eris.Errorf("SEARCH_PER_MINUTE must be positive, got %d", c.SearchPerMin)
	}
	if c.FetchTimeout <= 0 || c.SearchTimeout <= 0 {
		return eris.New("FETCH_TIMEOUT and SEARCH_TIMEOUT must be positive")
	}
	if c.MinIOEndpoint != "" && (c.MinIOAccessKey == "" || c.MinIOSecretKey == "") {
		return eris.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required with MINIO_ENDPOINT")
	}
	return nil
}

// HistoryEnabled reports whether analyses should be written to Postgres.
func (c Config) HistoryEnabled() bool { return c.DBHost != "" && c.DBName != "" }

// ArchiveEnabled reports whether uploads and scrapes go to MinIO.
func (c Config) ArchiveEnabled() bool { return c.MinIOEndpoint != "" }

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}
