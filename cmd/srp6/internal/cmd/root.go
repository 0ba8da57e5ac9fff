// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package cmd implements the CLI commands of the srp6 utility.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the version of the srp6 utility.
const Version = "0.1.0"

// app holds what the root command resolves before running a subcommand.
type app struct {
	conf       *Config
	log        *zap.SugaredLogger
	configPath string
	hash       string
	bits       int
}

// NewRootCommand returns the srp6 command and its subcommands.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "srp6",
		Short: "SRP-6a enrollment and self-test utility",
		Long: `srp6 creates salts and password verifiers for SRP-6a enrollment, and checks
that a set of parameters completes an authentication in-process.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to a TOML configuration file")
	flags.IntVar(&a.bits, "bits", 0, "Bit size of the safe prime N, overrides the configuration")
	flags.StringVar(&a.hash, "hash", "", "Hash function H, e.g. SHA-256, overrides the configuration")

	root.AddCommand(
		newInitCommand(),
		newSaltCommand(a),
		newVerifierCommand(a),
		newSelftestCommand(a),
		newVersionCommand(),
	)

	return root
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	conf, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("bits") {
		conf.Bits = a.bits
	}

	if cmd.Flags().Changed("hash") {
		conf.Hash = a.hash
	}

	if err = conf.Validate(); err != nil {
		return err
	}

	logger, err := NewLogger(conf.Logger)
	if err != nil {
		return err
	}

	a.conf, a.log = conf, logger

	return nil
}

// Execute runs the root command and exits with a non-zero status on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
