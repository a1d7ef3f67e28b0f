// Package log writes diagnostics to a dated file in the logs directory through logrus.
// Until Setup enables it, every call is discarded.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/anisan-cli/reel/filesystem"
	"github.com/anisan-cli/reel/key"
	"github.com/anisan-cli/reel/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	enabled bool
	logger  = newDiscardLogger()
)

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Setup opens today's log file and applies the configured format and level.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return nil
}

// Enabled reports whether log calls reach the file.
func Enabled() bool {
	return enabled
}

func Error(args ...interface{}) {
	if enabled {
		logger.Error(args...)
	}
}
func Errorf(format string, args ...interface{}) {
	if enabled {
		logger.Errorf(format, args...)
	}
}
func Warnf(format string, args ...interface{}) {
	if enabled {
		logger.Warnf(format, args...)
	}
}
func Info(args ...interface{}) {
	if enabled {
		logger.Info(args...)
	}
}
func Infof(format string, args ...interface{}) {
	if enabled {
		logger.Infof(format, args...)
	}
}
func Debugf(format string, args ...interface{}) {
	if enabled {
		logger.Debugf(format, args...)
	}
}
func Tracef(format string, args ...interface{}) {
	if enabled {
		logger.Tracef(format, args...)
	}
}
