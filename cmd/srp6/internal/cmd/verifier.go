// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package cmd

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/Fi5t/srp6"
)

var errNoPassword = errors.New("no password provided")

func newVerifierCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verifier",
		Short: "Compute the salt and password verifier to store for a user.",
		Long: `Compute the salt and password verifier to store for a user. The password is read
from the terminal when --password is not set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.verifier(cmd)
		},
	}

	cmd.Flags().StringP("user", "u", "", "User identity")
	cmd.Flags().StringP("password", "p", "", "User password, prompted for when not set")
	cmd.Flags().StringP("salt", "s", "", "Salt in hexadecimal, randomly generated when not set")
	cmd.Flags().Bool("identity", false, "Include the user identity in x, overrides the configuration")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func (a *app) verifier(cmd *cobra.Command) error {
	p, err := a.conf.Params()
	if err != nil {
		return err
	}

	user, _ := cmd.Flags().GetString("user")

	salt, err := a.salt(cmd)
	if err != nil {
		return err
	}

	password, _ := cmd.Flags().GetString("password")
	if !cmd.Flags().Changed("password") {
		if password, err = readPassword(cmd); err != nil {
			return err
		}
	}

	xRoutine := a.conf.XRoutine()
	if identity, _ := cmd.Flags().GetBool("identity"); identity {
		xRoutine = srp6.XRoutineWithUserIdentity
	}

	gen, err := srp6.NewVerifierGenerator(p, &srp6.VerifierOptions{XRoutine: xRoutine})
	if err != nil {
		return err
	}

	v, err := gen.GenerateVerifier(salt, []byte(user), []byte(password))
	if err != nil {
		return err
	}

	a.log.Infow("verifier generated", "user", user, "params", p.String())
	fmt.Fprintf(cmd.OutOrStdout(), "salt: %s\nverifier: %s\n", hex.EncodeToString(salt), srp6.ToHex(v))

	return nil
}

func (a *app) salt(cmd *cobra.Command) ([]byte, error) {
	if s, _ := cmd.Flags().GetString("salt"); s != "" {
		salt, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid salt: %w", err)
		}

		return salt, nil
	}

	return srp6.GenerateRandomSalt(rand.Reader, a.conf.SaltLength)
}

// readPassword prompts for a password without echo on a terminal, and reads a line otherwise.
func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()

	if f, ok := in.(*os.File); ok && terminal.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

		password, err := terminal.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", err
		}

		return string(password), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" && errors.Is(err, io.EOF) {
		return "", errNoPassword
	}

	return line, nil
}
