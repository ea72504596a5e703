package app

import (
	"io"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ConfigureLogger настраивает logger по LogConfig. stdout занят диалогом с покупателем,
// поэтому без файла логи пишутся в fallback (обычно stderr).
// Возвращённый Closer закрывает файл ротации.
func ConfigureLogger(logger *log.Logger, cfg LogConfig, fallback io.Writer) io.Closer {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.WarnLevel
	}
	logger.SetLevel(level)

	if cfg.Format == LogFormatJSON {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if cfg.File == "" {
		logger.SetOutput(fallback)
		return nopCloser{}
	}

	rot := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	logger.SetOutput(rot)
	return rot
}
