// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package cmd

import (
	"bytes"
	"crypto"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Fi5t/srp6"
)

var (
	errUnknownHash   = errors.New("unknown or unsupported hash function")
	errSaltLength    = errors.New("salt_length must be positive")
	errTimeout       = errors.New("timeout must not be negative")
	errNoEnvironment = errors.New("logger env must be either development or production")
)

// Duration is a time.Duration encoded in TOML as a string such as "2m30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the configuration of the srp6 utility.
type Config struct {
	Logger     *LoggerConfig `toml:"logger"`
	Hash       string        `toml:"hash"`
	Timeout    Duration      `toml:"timeout"`
	Bits       int           `toml:"bits"`
	SaltLength int           `toml:"salt_length"`
	Identity   bool          `toml:"identity"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	p := srp6.DefaultCryptoParams()

	return &Config{
		Bits:       p.BitSize(),
		Hash:       p.H().String(),
		SaltLength: srp6.DefaultSaltLength,
		Logger:     &LoggerConfig{Environment: "production"},
	}
}

// LoadConfig decodes the TOML file at path over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}

	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if conf.Logger == nil {
		conf.Logger = DefaultConfig().Logger
	}

	return conf, nil
}

// Save writes conf to path in TOML.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// Validate checks the values of the configuration.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}

	if c.SaltLength <= 0 {
		return errSaltLength
	}

	if c.Timeout.Duration < 0 {
		return errTimeout
	}

	if !c.Logger.valid() {
		return errNoEnvironment
	}

	return nil
}

// Params returns the group parameters the configuration names.
func (c *Config) Params() (*srp6.CryptoParams, error) {
	h, err := ParseHash(c.Hash)
	if err != nil {
		return nil, err
	}

	return srp6.GetInstance(c.Bits, h)
}

// XRoutine returns the routine computing x for this configuration.
func (c *Config) XRoutine() srp6.XRoutine {
	if c.Identity {
		return srp6.XRoutineWithUserIdentity
	}

	return srp6.DefaultXRoutine
}

// ParseHash resolves a hash function by name, ignoring case and dashes, e.g. "sha-256", "SHA3-512", "blake2b-512".
func ParseHash(name string) (crypto.Hash, error) {
	normalize := func(s string) string {
		return strings.ToUpper(strings.ReplaceAll(s, "-", ""))
	}

	for h := crypto.MD4; h <= crypto.BLAKE2b_512; h++ {
		if normalize(h.String()) == normalize(name) && srp6.IsSupportedHash(h) {
			return h, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errUnknownHash, name)
}
