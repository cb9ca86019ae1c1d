package logging

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/listafacil/backend/config"
)

// Setup builds the service logger: human-readable console output plus a
// rotated log file. In development only the console writer is used.
func Setup(cfg *config.Config) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	var writer zerolog.LevelWriter
	if cfg.Server.Environment == "development" {
		writer = zerolog.MultiLevelWriter(console)
	} else {
		_ = os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755)
		file := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		writer = zerolog.MultiLevelWriter(console, file)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
