package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/lumina-library/library/internal/assistant"
	"github.com/Astemirdum/lumina-library/pkg/kafka"
	"github.com/Astemirdum/lumina-library/pkg/logger"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LEDGER_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"LEDGER_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Ledger struct {
	// SeedFile replaces the embedded seed catalog when set.
	SeedFile      string        `envconfig:"LEDGER_SEED_FILE"`
	SweepInterval time.Duration `envconfig:"LEDGER_OVERDUE_SWEEP"`
}

type Config struct {
	Server    HTTPServer `yaml:"server"`
	Ledger    Ledger
	Kafka     kafka.Config
	Assistant assistant.Config
	Log       logger.Log `yaml:"log"`
}

// Load applies ops as defaults and then reads the environment over them.
func Load(ops ...Option) (*Config, error) {
	var config Config
	for _, op := range ops {
		op(&config)
	}
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.Wrap(err, "envconfig")
	}
	return &config, nil
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config, err := Load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(*cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	if cfg.Assistant.APIKey != "" {
		cfg.Assistant.APIKey = "***"
	}
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
