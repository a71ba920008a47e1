package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	App        AppConfig
	JWT        JWTConfig
	Payroll    PayrollConfig
	Attendance AttendanceConfig
	Storage    StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JWTConfig holds the signing secret used to verify API bearer tokens.
// Token issuance belongs to the identity service, not this backend.
type JWTConfig struct {
	Secret string
}

// PayrollConfig holds tunables for batch runs and the statutory evaluator.
type PayrollConfig struct {
	BatchWorkers         int
	EvaluatorTimeout     time.Duration
	PeriodEnsureInterval time.Duration
}

// AttendanceConfig holds the working-week assumptions used when deriving
// working days for a period.
type AttendanceConfig struct {
	RestDay time.Weekday
}

// StorageConfig holds the filing document store location.
type StorageConfig struct {
	FilingPath string
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "paylane-payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	batchWorkers, err := strconv.Atoi(getEnv("PAYROLL_BATCH_WORKERS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_BATCH_WORKERS: %w", err)
	}

	evaluatorTimeout, err := time.ParseDuration(getEnv("STATUTORY_EVALUATOR_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATUTORY_EVALUATOR_TIMEOUT: %w", err)
	}

	periodEnsureInterval, err := time.ParseDuration(getEnv("PAYROLL_PERIOD_ENSURE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_PERIOD_ENSURE_INTERVAL: %w", err)
	}

	config.Payroll = PayrollConfig{
		BatchWorkers:         batchWorkers,
		EvaluatorTimeout:     evaluatorTimeout,
		PeriodEnsureInterval: periodEnsureInterval,
	}

	restDay, err := parseWeekday(getEnv("ATTENDANCE_REST_DAY", "Sunday"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_REST_DAY: %w", err)
	}

	config.Attendance = AttendanceConfig{
		RestDay: restDay,
	}

	config.Storage = StorageConfig{
		FilingPath: getEnv("FILING_STORAGE_PATH", "./data/filings"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.BatchWorkers < 1 {
		return fmt.Errorf("PAYROLL_BATCH_WORKERS must be at least 1")
	}
	if c.Payroll.PeriodEnsureInterval <= 0 {
		return fmt.Errorf("PAYROLL_PERIOD_ENSURE_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", name)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
