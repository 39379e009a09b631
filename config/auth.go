package config

import (
	"fmt"
	"os"
)

type AuthConfig struct {
	AllowedUserToken string
}

func GetAuthConfig() (*AuthConfig, error) {
	token := os.Getenv("ALLOWED_USER_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("ALLOWED_USER_TOKEN must be set")
	}

	return &AuthConfig{
		AllowedUserToken: token,
	}, nil
}
