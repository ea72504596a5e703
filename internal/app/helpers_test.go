package app

import (
	"io"
	"testing"

	log "github.com/sirupsen/logrus"
)

// quietLogger возвращает logger, который ничего не выводит.
func quietLogger(t *testing.T) *log.Entry {
	t.Helper()
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("test", t.Name())
}

// testConfig — конфигурация по умолчанию без внешних интеграций.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Ops.Addr = ""
	cfg.Kafka.Brokers = ""
	cfg.Tracing.Endpoint = ""
	return cfg
}
