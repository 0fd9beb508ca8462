package config

import (
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию для кэша Redis.
// Кэш необязателен: при Enabled=false сервис работает напрямую с БД.
type RedisConfig struct {
	Enabled        bool          `yaml:"enabled" env:"TASKFLOW_REDIS_ENABLED" env-default:"false"`
	Host           string        `yaml:"host" env:"TASKFLOW_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"TASKFLOW_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"TASKFLOW_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"TASKFLOW_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"TASKFLOW_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"TASKFLOW_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TASKFLOW_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"TASKFLOW_REDIS_POOL_SIZE" env-default:"10"`
	DefaultTTL     time.Duration `yaml:"default_ttl" env:"TASKFLOW_REDIS_DEFAULT_TTL" env-default:"5m"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
