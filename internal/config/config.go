package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	defaultAddr         = ":8080"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultPongWait     = 60 * time.Second
	defaultIdleTimeout  = 30 * time.Minute
	defaultReapPeriod   = 30 * time.Minute
	defaultLogLevel     = "info"
)

type ServerConfig struct {
	Addr         string        `yaml:"addr" env:"SERVER_ADDR"`
	StaticDir    string        `yaml:"static_dir" env:"SERVER_STATIC_DIR"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	// websocket peers silent for longer than this are dropped
	PongWait time.Duration `yaml:"pong_wait" env:"SERVER_PONG_WAIT"`
}

type SessionConfig struct {
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SESSION_IDLE_TIMEOUT"`
	ReapPeriod  time.Duration `yaml:"reap_period" env:"SESSION_REAP_PERIOD"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

// New reads the yaml file at cfgPath, applies environment overrides and
// fills in defaults. A missing file leaves everything to env and defaults.
func New(cfgPath string) (config, error) {
	cfg := config{}
	file, err := os.Open(cfgPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return config{}, errors.WithMessage(err, "open config file")
	default:
		defer func() {
			_ = file.Close()
		}()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return config{}, errors.WithMessage(err, "decode config file")
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return config{}, errors.WithMessage(err, "read env")
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c *config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = defaultWriteTimeout
	}
	if c.Server.PongWait == 0 {
		c.Server.PongWait = defaultPongWait
	}
	if c.Session.IdleTimeout == 0 {
		c.Session.IdleTimeout = defaultIdleTimeout
	}
	if c.Session.ReapPeriod == 0 {
		c.Session.ReapPeriod = defaultReapPeriod
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}

func (c *config) validate() error {
	durations := map[string]time.Duration{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"server.pong_wait":     c.Server.PongWait,
		"session.idle_timeout": c.Session.IdleTimeout,
		"session.reap_period":  c.Session.ReapPeriod,
	}
	for name, d := range durations {
		if d < 0 {
			return errors.WithMessagef(ErrInvalidConfig, "%s must be positive, got %s", name, d)
		}
	}
	return nil
}
