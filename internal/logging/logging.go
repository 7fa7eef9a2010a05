package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper/internal/config"
)

const (
	maxLogSizeMB  = 50
	maxLogBackups = 3
	maxLogAgeDays = 28
)

// New builds the application logger: colored text at debug level in
// development, JSON at info level otherwise. log.level overrides the
// level; log.file adds a size-rotated JSON copy of every entry.
func New(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()

	level := logrus.InfoLevel
	if cfg.Development() {
		level = logrus.DebugLevel
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if cfg.Log.Level != "" {
		var err error
		if level, err = logrus.ParseLevel(cfg.Log.Level); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}
	log.SetLevel(level)

	if cfg.Log.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.Log.File,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to open log file: %w", err)
		}
		log.AddHook(hook)
	}

	return log, nil
}
