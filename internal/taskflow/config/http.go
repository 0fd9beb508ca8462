package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"TASKFLOW_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"TASKFLOW_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"TASKFLOW_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"TASKFLOW_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
