package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Missing profile base URL", func(c *Config) { c.ProfileBaseURL = "" }, true},
		{"Production with default JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Production with short JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Production with default DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"Production with http profile base URL", func(c *Config) {
			c.Env = "production"
			c.ProfileBaseURL = "http://tapcard.example.com/users"
		}, true},
		{"Valid production config", func(c *Config) { c.Env = "production" }, false},
		{"Prod alias is treated as production", func(c *Config) {
			c.Env = "prod"
			c.JWTSecret = "short"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:            "development",
				Port:           "8420",
				JWTSecret:      "secure-secret-at-least-32-chars-long",
				DBPassword:     "secure-password",
				DBSSLMode:      "require",
				RedisURL:       "localhost:6379",
				ProfileBaseURL: "https://tapcard.example.com/users",
			}
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
