package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the task board
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Validation  ValidationConfig  `yaml:"validation"`
	Reports     ReportsConfig     `yaml:"reports"`
	Server      ServerConfig      `yaml:"server"`
	Application ApplicationConfig `yaml:"application"`
}

// StorageConfig holds persistent store configuration
type StorageConfig struct {
	Dir          string        `yaml:"dir" env:"KB_DB_DIR"`
	Filename     string        `yaml:"filename" env:"KB_DB_FILENAME"`
	QueryTimeout time.Duration `yaml:"query_timeout" env:"KB_DB_QUERY_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"KB_DB_WRITE_TIMEOUT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	ProblemMaxLength int `yaml:"problem_max_length" env:"KB_VALIDATION_PROBLEM_MAX"`
	ResultMaxLength  int `yaml:"result_max_length" env:"KB_VALIDATION_RESULT_MAX"`
	TitleMaxLength   int `yaml:"title_max_length" env:"KB_VALIDATION_TITLE_MAX"`
}

// ReportsConfig holds the file names reports and exports are written to
type ReportsConfig struct {
	Dir               string `yaml:"dir" env:"KB_REPORTS_DIR"`
	DailyReportFile   string `yaml:"daily_report_file" env:"KB_DAILY_REPORT_FILE"`
	HistoryExportFile string `yaml:"history_export_file" env:"KB_HISTORY_EXPORT_FILE"`
	TimeTrackingFile  string `yaml:"time_tracking_file" env:"KB_TIME_TRACKING_FILE"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"KB_SERVER_ADDR"`
	Mode            string        `yaml:"mode" env:"KB_SERVER_MODE"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"KB_SERVER_SHUTDOWN_TIMEOUT"`
	MaxImportBytes  int64         `yaml:"max_import_bytes" env:"KB_SERVER_MAX_IMPORT_BYTES"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Environment string        `yaml:"environment" env:"KB_ENV"`
	Timeout     time.Duration `yaml:"timeout" env:"KB_APP_TIMEOUT"`
	Verbose     bool          `yaml:"verbose" env:"KB_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".kb")

	return &Config{
		Storage: StorageConfig{
			Dir:          defaultDBDir,
			Filename:     "kb.db",
			QueryTimeout: 10 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Validation: ValidationConfig{
			ProblemMaxLength: 200,
			ResultMaxLength:  500,
			TitleMaxLength:   255,
		},
		Reports: ReportsConfig{
			Dir:               ".",
			DailyReportFile:   "daily_report.txt",
			HistoryExportFile: "kanban_tasks.csv",
			TimeTrackingFile:  "time_tracking.csv",
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			Mode:            "release",
			ShutdownTimeout: 5 * time.Second,
			MaxImportBytes:  10 << 20,
		},
		Application: ApplicationConfig{
			Environment: string(Production),
			Timeout:     60 * time.Second,
			Verbose:     false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Storage.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Storage.WriteTimeout
}

// ReportPath returns the path a report file is written to
func (c *Config) ReportPath(filename string) string {
	return filepath.Join(c.Reports.Dir, filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if dir := os.Getenv("KB_DB_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("KB_DB_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if timeout := os.Getenv("KB_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Storage.QueryTimeout = ParseDurationWithFallback(timeout, c.Storage.QueryTimeout)
	}
	if timeout := os.Getenv("KB_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Storage.WriteTimeout = ParseDurationWithFallback(timeout, c.Storage.WriteTimeout)
	}

	// Validation configuration
	if maxLen := os.Getenv("KB_VALIDATION_PROBLEM_MAX"); maxLen != "" {
		c.Validation.ProblemMaxLength = ParseIntWithFallback(maxLen, c.Validation.ProblemMaxLength)
	}
	if maxLen := os.Getenv("KB_VALIDATION_RESULT_MAX"); maxLen != "" {
		c.Validation.ResultMaxLength = ParseIntWithFallback(maxLen, c.Validation.ResultMaxLength)
	}
	if maxLen := os.Getenv("KB_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}

	// Reports configuration
	if dir := os.Getenv("KB_REPORTS_DIR"); dir != "" {
		c.Reports.Dir = dir
	}
	if name := os.Getenv("KB_DAILY_REPORT_FILE"); name != "" {
		c.Reports.DailyReportFile = name
	}
	if name := os.Getenv("KB_HISTORY_EXPORT_FILE"); name != "" {
		c.Reports.HistoryExportFile = name
	}
	if name := os.Getenv("KB_TIME_TRACKING_FILE"); name != "" {
		c.Reports.TimeTrackingFile = name
	}

	// Server configuration
	if addr := os.Getenv("KB_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if mode := os.Getenv("KB_SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if timeout := os.Getenv("KB_SERVER_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}
	if size := os.Getenv("KB_SERVER_MAX_IMPORT_BYTES"); size != "" {
		if n, err := strconv.ParseInt(size, 10, 64); err == nil {
			c.Server.MaxImportBytes = n
		}
	}

	// Application configuration
	if env := os.Getenv("KB_ENV"); env != "" {
		c.Application.Environment = env
	}
	if timeout := os.Getenv("KB_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("KB_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "database directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate validation configuration
	if c.Validation.ProblemMaxLength < 1 {
		return &ConfigError{Field: "validation.problem_max_length", Message: "problem maximum length must be at least 1"}
	}
	if c.Validation.ResultMaxLength < 1 {
		return &ConfigError{Field: "validation.result_max_length", Message: "result maximum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}

	// Validate reports configuration
	if c.Reports.DailyReportFile == "" {
		return &ConfigError{Field: "reports.daily_report_file", Message: "daily report file name cannot be empty"}
	}
	if c.Reports.HistoryExportFile == "" {
		return &ConfigError{Field: "reports.history_export_file", Message: "history export file name cannot be empty"}
	}
	if c.Reports.TimeTrackingFile == "" {
		return &ConfigError{Field: "reports.time_tracking_file", Message: "time tracking file name cannot be empty"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return &ConfigError{Field: "server.mode", Message: "server mode must be debug, release or test"}
	}
	if c.Server.MaxImportBytes <= 0 {
		return &ConfigError{Field: "server.max_import_bytes", Message: "maximum import size must be positive"}
	}

	// Validate application configuration
	switch Environment(c.Application.Environment) {
	case Development, Testing, Production:
	default:
		return &ConfigError{Field: "application.environment", Message: "environment must be development, testing or production"}
	}
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
