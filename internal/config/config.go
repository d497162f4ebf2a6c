package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	RoundLabelShort = "short"
	RoundLabelLong  = "long"
)

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string     `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis      Redis      `yaml:"redis"`
	Scoreboard Scoreboard `yaml:"scoreboard"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Scoreboard - defaults for a fresh board and the key it is stored under.
type Scoreboard struct {
	ID         string `yaml:"id" env:"SCOREBOARD_ID" env-default:"default"`
	Rounds     int    `yaml:"rounds" env:"SCOREBOARD_ROUNDS" env-default:"7"`
	Players    int    `yaml:"players" env:"SCOREBOARD_PLAYERS" env-default:"4"`
	RoundLabel string `yaml:"round-label" env:"SCOREBOARD_ROUND_LABEL" env-default:"short"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Scoreboard) UseLongRoundLabel() bool {
	return that.RoundLabel == RoundLabelLong
}
