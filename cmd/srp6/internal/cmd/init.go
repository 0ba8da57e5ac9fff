// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ConfigFileName is the name of the configuration file written by the init command.
const ConfigFileName = "srp6.toml"

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file for srp6.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			file := filepath.Join(dir, ConfigFileName)

			if err := DefaultConfig().Save(file); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), file)

			return nil
		},
	}

	cmd.Flags().StringP("dir", "d", ".", "Location of directory for storing the configuration file")

	return cmd
}
