package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// AttendanceConfig holds the attendance source and policy configuration
type AttendanceConfig struct {
	Source          string // postgres | file
	FilePath        string
	ReloadInterval  time.Duration
	PolicyStartHour int
	PolicyEndHour   int
	HoursPerDay     int
}

const (
	SourcePostgres = "postgres"
	SourceFile     = "file"
)

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cmlabs-hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Attendance configuration
	reloadInterval, err := time.ParseDuration(getEnv("ATTENDANCE_RELOAD_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_RELOAD_INTERVAL: %w", err)
	}

	startHour, err := strconv.Atoi(getEnv("POLICY_START_HOUR", "9"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_START_HOUR: %w", err)
	}

	endHour, err := strconv.Atoi(getEnv("POLICY_END_HOUR", "18"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_END_HOUR: %w", err)
	}

	hoursPerDay, err := strconv.Atoi(getEnv("HOURS_PER_DAY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOURS_PER_DAY: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Source:          strings.ToLower(getEnv("ATTENDANCE_SOURCE", SourceFile)),
		FilePath:        getEnv("ATTENDANCE_FILE", "attendance.yaml"),
		ReloadInterval:  reloadInterval,
		PolicyStartHour: startHour,
		PolicyEndHour:   endHour,
		HoursPerDay:     hoursPerDay,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Attendance.Source {
	case SourcePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case SourceFile:
		if c.Attendance.FilePath == "" {
			return fmt.Errorf("ATTENDANCE_FILE is required")
		}
	default:
		return fmt.Errorf("ATTENDANCE_SOURCE must be one of: %s, %s", SourcePostgres, SourceFile)
	}

	if c.Attendance.PolicyStartHour < 0 || c.Attendance.PolicyEndHour > 23 ||
		c.Attendance.PolicyStartHour >= c.Attendance.PolicyEndHour {
		return fmt.Errorf("POLICY_START_HOUR must be before POLICY_END_HOUR within 0-23")
	}
	if c.Attendance.HoursPerDay <= 0 {
		return fmt.Errorf("HOURS_PER_DAY must be positive")
	}
	if c.Attendance.ReloadInterval <= 0 {
		return fmt.Errorf("ATTENDANCE_RELOAD_INTERVAL must be positive")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
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

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
