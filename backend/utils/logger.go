package utils

import (
	"log"
	"os"
)

// LoggerConfig defines the logger setup
type LoggerConfig struct {
	// Output stream (os.Stdout, a file, ...)
	Output *os.File
}

// InitLogger initializes and returns the application logger
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	return log.New(cfg.Output, "[Adventure] ", log.LstdFlags|log.LUTC)
}
