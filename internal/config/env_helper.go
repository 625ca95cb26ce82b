package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// getEnvAsFloat64 returns the float value of key, or fallback when unset or invalid.
func (c *Config) getEnvAsFloat64(key string, fallback float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valueStr) == "" {
		return fallback
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("invalid float64 %q for %s, using %v", valueStr, key, fallback))

		return fallback
	}

	return val
}

// getEnvAsInt returns the int value of key, or fallback when unset or invalid.
func (c *Config) getEnvAsInt(key string, fallback int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valueStr) == "" {
		return fallback
	}

	val, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("invalid int %q for %s, using %d", valueStr, key, fallback))

		return fallback
	}

	return val
}

func getEnvAsString(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}

	return fallback
}
