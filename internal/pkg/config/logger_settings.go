package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log levels. critical is accepted for compatibility and logged as error.
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Log types
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Console streams. clmctl logs to stderr so its JSON reports can be piped.
const (
	LogOutputStdout = "stdout"
	LogOutputStderr = "stderr"
)

// Rotation limits of the file logger
const (
	maxLogFileSizeMB  = 100
	maxLogFileBackups = 10
	maxLogFileAgeDays = 365
)

// LoggerSettings configures the process logger. Rotation fields only apply to
// the file logger, Output only to the console logger.
type LoggerSettings struct {
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=info debug error warning critical"`
	LogType    string `mapstructure:"log_type" validate:"required,oneof=console file"`
	Output     string `mapstructure:"output" validate:"omitempty,oneof=stdout stderr"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Validate checks the logger section, including rotation limits for file logging
func (s *LoggerSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}
	if s.LogType != LogTypeFile {
		return nil
	}

	switch {
	case s.FilePath == "":
		return fmt.Errorf("logger.file_path is required when logger.log_type is %s", LogTypeFile)
	case s.MaxSize < 1 || s.MaxSize > maxLogFileSizeMB:
		return fmt.Errorf("logger.max_size must be between 1 and %d MB, got %d", maxLogFileSizeMB, s.MaxSize)
	case s.MaxBackups < 1 || s.MaxBackups > maxLogFileBackups:
		return fmt.Errorf("logger.max_backups must be between 1 and %d, got %d", maxLogFileBackups, s.MaxBackups)
	case s.MaxAge < 1 || s.MaxAge > maxLogFileAgeDays:
		return fmt.Errorf("logger.max_age must be between 1 and %d days, got %d", maxLogFileAgeDays, s.MaxAge)
	}
	return nil
}
