package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"5001"`
	PublicURL  string `yaml:"public-url" env:"PUBLIC_URL" env-default:"http://localhost:3000"`
	Game       Game   `yaml:"game"`
	Redis      Redis  `yaml:"redis"`
}

// Game holds the tunable rules of a match.
type Game struct {
	HandSize       int `yaml:"hand-size" env:"GAME_HAND_SIZE" env-default:"7"`
	MaxPlayers     int `yaml:"max-players" env:"GAME_MAX_PLAYERS" env-default:"12"`
	MinPlayers     int `yaml:"min-players" env:"GAME_MIN_PLAYERS" env-default:"2"`
	SequencesToWin int `yaml:"sequences-to-win" env:"GAME_SEQUENCES_TO_WIN" env-default:"2"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations from the config.yml file, or from the environment if the file is absent.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read config from env: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
