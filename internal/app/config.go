package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/tracing"
)

const (
	// EnvConfigPath — путь к YAML-файлу конфигурации.
	EnvConfigPath = "STOREFRONT_CONFIG"
	// EnvPrefix — префикс переменных окружения; вложенность через "__", например STOREFRONT_LOG__LEVEL.
	EnvPrefix = "STOREFRONT_"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ProductConfig — товар каталога в конфигурации. Цена задаётся строкой, чтобы не терять точность.
type ProductConfig struct {
	ID    int    `koanf:"id"`
	Name  string `koanf:"name"`
	Price string `koanf:"price"`
}

// LogConfig — настройки логирования. Пустой File — писать в stderr.
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
}

// OpsConfig — служебный HTTP-сервер. Пустой Addr — сервер не запускается.
type OpsConfig struct {
	Addr string `koanf:"addr"`
}

// KafkaConfig — публикация чеков. Brokers — список через запятую, пустой выключает Kafka.
type KafkaConfig struct {
	Brokers  string `koanf:"brokers"`
	Topic    string `koanf:"topic"`
	ClientID string `koanf:"client_id"`
}

// BrokerList разбирает Brokers, отбрасывая пустые элементы.
func (c KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// TracingConfig — экспорт трассировок по OTLP/gRPC.
type TracingConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	Insecure    bool    `koanf:"insecure"`
	SampleRatio float64 `koanf:"sample_ratio"`
}

// Tracing приводит настройки к параметрам пакета tracing.
func (c TracingConfig) Tracing() tracing.Config {
	return tracing.Config{Endpoint: c.Endpoint, Insecure: c.Insecure, SampleRatio: c.SampleRatio}
}

// Config описывает настройки запуска магазина.
type Config struct {
	StoreName string          `koanf:"store_name"`
	Currency  string          `koanf:"currency"`
	Catalog   []ProductConfig `koanf:"catalog"`
	Log       LogConfig       `koanf:"log"`
	Ops       OpsConfig       `koanf:"ops"`
	Kafka     KafkaConfig     `koanf:"kafka"`
	Tracing   TracingConfig   `koanf:"tracing"`
}

// DefaultConfig возвращает магазин с исходным каталогом и выключенными внешними интеграциями.
func DefaultConfig() Config {
	return Config{
		StoreName: "Daniboy's Online Sari-Sari Store",
		Currency:  "₱",
		Catalog: []ProductConfig{
			{ID: 1, Name: "Kopiko Lucky Day", Price: "24"},
			{ID: 2, Name: "Nescafé Black", Price: "57"},
			{ID: 3, Name: "Minute Maid", Price: "38"},
			{ID: 4, Name: "C2 Apple", Price: "32"},
			{ID: 5, Name: "Pocari Sweat", Price: "51"},
		},
		Log: LogConfig{
			Level:      log.WarnLevel.String(),
			Format:     LogFormatText,
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Kafka: KafkaConfig{
			ClientID: "storefront",
		},
		Tracing: TracingConfig{
			SampleRatio: 1,
		},
	}
}

// LoadConfig накладывает на значения по умолчанию YAML-файл (если path не пуст) и переменные окружения.
// Недопустимые скалярные значения заменяются значениями по умолчанию и возвращаются как предупреждения.
// Ошибка возвращается, если файл не читается или каталог некорректен.
func LoadConfig(path string) (Config, []string, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, nil, fmt.Errorf("env overlay: %w", err)
	}

	cfg := DefaultConfig()
	if k.Exists("catalog") {
		// Каталог из файла заменяет исходный целиком, а не поэлементно.
		cfg.Catalog = nil
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, nil, fmt.Errorf("unmarshal config: %w", err)
	}

	warnings := cfg.normalize()
	if _, err := cfg.Products(); err != nil {
		return Config{}, warnings, err
	}
	return cfg, warnings, nil
}

// normalize возвращает к значениям по умолчанию то, что нельзя использовать.
func (c *Config) normalize() []string {
	def := DefaultConfig()
	var warnings []string

	c.StoreName = strings.TrimSpace(c.StoreName)
	if c.StoreName == "" {
		warnings = append(warnings, "store_name is empty, using default")
		c.StoreName = def.StoreName
	}
	c.Currency = strings.TrimSpace(c.Currency)
	if c.Currency == "" {
		warnings = append(warnings, "currency is empty, using default")
		c.Currency = def.Currency
	}

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		warnings = append(warnings, fmt.Sprintf("invalid log.level %q, using %s", c.Log.Level, def.Log.Level))
		c.Log.Level = def.Log.Level
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format != LogFormatText && c.Log.Format != LogFormatJSON {
		warnings = append(warnings, fmt.Sprintf("invalid log.format %q, using %s", c.Log.Format, def.Log.Format))
		c.Log.Format = def.Log.Format
	}
	if c.Log.MaxSizeMB <= 0 {
		warnings = append(warnings, fmt.Sprintf("invalid log.max_size_mb %d, using %d", c.Log.MaxSizeMB, def.Log.MaxSizeMB))
		c.Log.MaxSizeMB = def.Log.MaxSizeMB
	}
	if c.Log.MaxBackups < 0 {
		warnings = append(warnings, fmt.Sprintf("invalid log.max_backups %d, using %d", c.Log.MaxBackups, def.Log.MaxBackups))
		c.Log.MaxBackups = def.Log.MaxBackups
	}
	if c.Log.MaxAgeDays < 0 {
		warnings = append(warnings, fmt.Sprintf("invalid log.max_age_days %d, using %d", c.Log.MaxAgeDays, def.Log.MaxAgeDays))
		c.Log.MaxAgeDays = def.Log.MaxAgeDays
	}

	if c.Tracing.SampleRatio <= 0 || c.Tracing.SampleRatio > 1 {
		warnings = append(warnings, fmt.Sprintf("invalid tracing.sample_ratio %v, using %v", c.Tracing.SampleRatio, def.Tracing.SampleRatio))
		c.Tracing.SampleRatio = def.Tracing.SampleRatio
	}
	return warnings
}

// Products строит товары каталога. Дубликаты идентификаторов отклоняет репозиторий каталога.
func (c Config) Products() ([]domain.Product, error) {
	if len(c.Catalog) == 0 {
		return nil, errors.New("catalog: at least one product is required")
	}

	products := make([]domain.Product, 0, len(c.Catalog))
	for i, item := range c.Catalog {
		price, err := decimal.NewFromString(strings.TrimSpace(item.Price))
		if err != nil {
			return nil, fmt.Errorf("catalog[%d]: invalid price %q: %w", i, item.Price, err)
		}
		p, err := domain.NewProduct(item.ID, strings.TrimSpace(item.Name), price)
		if err != nil {
			return nil, fmt.Errorf("catalog[%d]: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}
