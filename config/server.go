package config

import (
	"fmt"
	"os"
	"strconv"
)

type ServerConfig struct {
	Port string
}

func GetServerConfig() (*ServerConfig, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8181"
	}
	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", port)
	}

	return &ServerConfig{
		Port: port,
	}, nil
}
