package config

import "time"

// JWTConfig содержит настройки для JWT токенов.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"TASKFLOW_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	TokenTTL   string `yaml:"token_ttl" env:"TASKFLOW_JWT_TOKEN_TTL" env-default:"1h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"TASKFLOW_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает продолжительность времени жизни токена.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return time.Hour
	}
	return duration
}
