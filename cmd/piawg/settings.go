package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envUsername = "PIA_USERNAME"
	envPassword = "PIA_PASSWD"
)

type credentials struct {
	Username string
	Password string
}

func (c credentials) complete() bool {
	return c.Username != "" && c.Password != ""
}

// loadCredentials resolves credentials from flags, then the process
// environment, then envFile. A missing envFile is not an error.
func loadCredentials(envFile, username, password string) (credentials, error) {
	fileEnv := map[string]string{}
	if envFile != "" {
		env, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileEnv = env
		case errors.Is(err, fs.ErrNotExist):
		default:
			return credentials{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		return fileEnv[key]
	}

	return credentials{
		Username: firstNonEmpty(username, lookup(envUsername)),
		Password: firstNonEmpty(password, lookup(envPassword)),
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
