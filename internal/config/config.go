package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN            string `env:"DSN,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	JWT struct {
		// Secret is shared with the identity provider that mints the session cookie.
		Secret string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD,required"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Confirmation struct {
		Expiration int `env:"EXPIRATION" envDefault:"120"` // seconds the user has to answer a dialog
	} `envPrefix:"CONFIRMATION_"`
	Seed struct {
		Month   string `env:"MONTH"`
		Members int    `env:"MEMBERS" envDefault:"12"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// only return the first error to keep the log readable
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
