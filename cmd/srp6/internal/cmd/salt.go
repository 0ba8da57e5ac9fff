// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Fi5t/srp6"
)

func newSaltCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salt",
		Short: "Print a random salt in hexadecimal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			length := a.conf.SaltLength
			if cmd.Flags().Changed("length") {
				length, _ = cmd.Flags().GetInt("length")
			}

			if length <= 0 {
				return errSaltLength
			}

			salt, err := srp6.GenerateRandomSalt(rand.Reader, length)
			if err != nil {
				return err
			}

			a.log.Debugw("salt generated", "length", length)
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(salt))

			return nil
		},
	}

	cmd.Flags().IntP("length", "l", 0, "Salt length in bytes, overrides the configuration")

	return cmd
}
