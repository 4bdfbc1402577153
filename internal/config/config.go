// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional .env file, an
// optional JSON config file, and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	// ErrSecretMissing is returned when no token signing secret is configured.
	ErrSecretMissing = errors.New("token signing secret is not set")
	// ErrLifetimeMissing is returned when no token lifetime is configured.
	ErrLifetimeMissing = errors.New("token lifetime is not set")
	// ErrLifetimeInvalid is returned when the token lifetime is not a positive integer.
	ErrLifetimeInvalid = errors.New("token lifetime must be a positive integer number of hours")
)

// Options holds the configuration values for the application. It is built
// once at startup and handed to the components that need it; nothing reads
// the environment after Parse returns.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// TokenSecret is the HMAC key used to sign and verify bearer tokens.
	TokenSecret string

	// TokenLifetimeHours is the validity window of issued tokens, in hours.
	TokenLifetimeHours int

	// LogLevel sets the logging verbosity ("debug", "info", "warn", "error").
	LogLevel string

	// Config is the path to the optional JSON config file.
	Config string
}

// Parse builds Options from, in order: defaults, command-line flags, a JSON
// config file (if present), and environment variables. A .env file in the
// working directory is loaded before the environment is read.
//
// Environment variables:
//
//	SERVER_ADDRESS      listening address
//	DATABASE_DSN        database connection string
//	CONFIG              path to the JSON config file
//	API_SECRET          token signing secret
//	TOKEN_HOUR_LIFESPAN token lifetime in hours
//	LOG_LEVEL           logging verbosity
//
// Parse fails when the signing secret is absent or the token lifetime is
// absent, non-numeric, or not positive: every token operation depends on
// them, so a process without them must not start.
func Parse(args []string) (*Options, error) {
	options := &Options{
		Port:     "localhost:8080",
		LogLevel: "info",
		Config:   "config.json",
	}

	fs := flag.NewFlagSet("task-manager", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", options.Port, "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", options.DatabaseDSN, "db address")
	fs.StringVar(&options.TokenSecret, "s", options.TokenSecret, "token signing secret")
	fs.IntVar(&options.TokenLifetimeHours, "t", options.TokenLifetimeHours, "token lifetime in hours")
	fs.StringVar(&options.LogLevel, "l", options.LogLevel, "log level")
	fs.StringVar(&options.Config, "config", options.Config, "path to config file")
	fs.StringVar(&options.Config, "c", options.Config, "path to config file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	loadDotEnv()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := os.Getenv("API_SECRET"); secret != "" {
		options.TokenSecret = secret
	}
	if lifespan := os.Getenv("TOKEN_HOUR_LIFESPAN"); lifespan != "" {
		hours, err := strconv.Atoi(lifespan)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrLifetimeInvalid, lifespan)
		}
		options.TokenLifetimeHours = hours
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	if err := options.validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// validate enforces the configuration every token operation depends on.
func (o *Options) validate() error {
	if o.TokenSecret == "" {
		return ErrSecretMissing
	}
	if o.TokenLifetimeHours == 0 {
		return ErrLifetimeMissing
	}
	if o.TokenLifetimeHours < 0 {
		return ErrLifetimeInvalid
	}
	return nil
}

// loadDotEnv loads a .env file from the working directory into the process
// environment when one exists. Variables already set keep their values.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	_ = godotenv.Load()
}
