package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	App        AppConfig
	Attendance AttendanceConfig
	Payroll    PayrollConfig
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

// AttendanceConfig holds the day-classification tolerances, in minutes.
type AttendanceConfig struct {
	LateGraceMinutes         int
	UndertimeGraceMinutes    int
	OvertimeThresholdMinutes int
}

// PayrollConfig holds payroll calculation settings. StandardMonthlyHours is
// the divisor used to derive an hourly-equivalent rate from a fixed monthly
// salary.
type PayrollConfig struct {
	StandardMonthlyHours int
}

func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence either way.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "shiftpay"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	lateGrace, err := strconv.Atoi(getEnv("ATTENDANCE_LATE_GRACE_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_LATE_GRACE_MINUTES: %w", err)
	}
	undertimeGrace, err := strconv.Atoi(getEnv("ATTENDANCE_UNDERTIME_GRACE_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_UNDERTIME_GRACE_MINUTES: %w", err)
	}
	overtimeThreshold, err := strconv.Atoi(getEnv("ATTENDANCE_OVERTIME_THRESHOLD_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_OVERTIME_THRESHOLD_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		LateGraceMinutes:         lateGrace,
		UndertimeGraceMinutes:    undertimeGrace,
		OvertimeThresholdMinutes: overtimeThreshold,
	}

	standardMonthlyHours, err := strconv.Atoi(getEnv("PAYROLL_STANDARD_MONTHLY_HOURS", "160"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_STANDARD_MONTHLY_HOURS: %w", err)
	}

	config.Payroll = PayrollConfig{
		StandardMonthlyHours: standardMonthlyHours,
	}

	// Validate required fields
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
	if c.Attendance.LateGraceMinutes < 0 || c.Attendance.UndertimeGraceMinutes < 0 || c.Attendance.OvertimeThresholdMinutes < 0 {
		return fmt.Errorf("attendance tolerances must be non-negative")
	}
	if c.Payroll.StandardMonthlyHours <= 0 {
		return fmt.Errorf("PAYROLL_STANDARD_MONTHLY_HOURS must be positive")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
