package config

import (
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/article-rating/pkg/logger"
	"github.com/Astemirdum/article-rating/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"RATING_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"RATING_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Config struct {
	Server    HTTPServer  `yaml:"server"`
	Database  postgres.DB `yaml:"db"`
	Log       logger.Log  `yaml:"log"`
	RateLimit float64     `yaml:"rateLimit" envconfig:"RATING_RPS"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
// Options are applied first and act as defaults that the environment overrides.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config, err := Load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
	})

	return cfg
}

func Load(ops ...Option) (*Config, error) {
	var config Config
	for _, op := range ops {
		op(&config)
	}
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	config.setDefaults()
	return &config, nil
}

const defaultTimeout = 15 * time.Second

func (c *Config) setDefaults() {
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaultTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = defaultTimeout
	}
}
