// Package config populates env-tagged configuration structs from the process
// environment, loading a .env file once per process when one is present.
//
//	var cfg session.Config
//	config.MustLoad(&cfg)
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilTarget indicates Load was handed a nil pointer
	ErrNilTarget = errors.New("config: nil target")

	// ErrParse wraps environment parsing failures
	ErrParse = errors.New("config: parsing environment failed")
)

var dotEnvOnce sync.Once

// Load populates cfg from the environment. A missing .env file is not an
// error.
func Load[T any](cfg *T) error {
	dotEnvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if cfg == nil {
		return ErrNilTarget
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParse, err)
	}
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
