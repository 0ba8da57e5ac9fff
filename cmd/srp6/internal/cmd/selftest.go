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
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/Fi5t/srp6"
)

var errSelftest = errors.New("self-test failed")

const (
	selftestUser     = "selftest"
	selftestPassword = "correct horse battery staple"
)

func newSelftestCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run a full in-process authentication with the configured parameters.",
		Long: `Run a full in-process authentication with the configured parameters. The exchange
must succeed with the right password, agree on the session key, and fail with a wrong one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.conf.Params()
			if err != nil {
				return err
			}

			if err = a.selftest(cmd, p); err != nil {
				a.log.Errorw("self-test failed", "params", p.String(), "error", err)
				return err
			}

			a.log.Infow("self-test passed", "params", p.String())
			fmt.Fprintln(cmd.OutOrStdout(), "ok:", p.String())

			return nil
		},
	}

	return cmd
}

func (a *app) sessionLogger(cmd *cobra.Command) *slog.Logger {
	if !a.conf.Logger.development() {
		return nil
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (a *app) selftest(cmd *cobra.Command, p *srp6.CryptoParams) error {
	salt, err := srp6.GenerateRandomSalt(rand.Reader, a.conf.SaltLength)
	if err != nil {
		return err
	}

	gen, err := srp6.NewVerifierGenerator(p, &srp6.VerifierOptions{XRoutine: a.conf.XRoutine()})
	if err != nil {
		return err
	}

	v, err := gen.GenerateVerifier(salt, []byte(selftestUser), []byte(selftestPassword))
	if err != nil {
		return err
	}

	clientOptions := &srp6.ClientOptions{
		XRoutine: a.conf.XRoutine(),
		Logger:   a.sessionLogger(cmd),
		Timeout:  a.conf.Timeout.Duration,
	}
	serverOptions := &srp6.ServerOptions{
		Logger:  a.sessionLogger(cmd),
		Timeout: a.conf.Timeout.Duration,
	}

	client, server, err := authenticate(p, salt, v, selftestPassword, clientOptions, serverOptions)
	if err != nil {
		return fmt.Errorf("%w: %w", errSelftest, err)
	}

	clientKey, err := client.SessionKeyHash()
	if err != nil {
		return err
	}

	serverKey, err := server.SessionKeyHash()
	if err != nil {
		return err
	}

	if !bytes.Equal(clientKey, serverKey) {
		return fmt.Errorf("%w: session keys differ", errSelftest)
	}

	a.log.Debugw("authenticated", "user", selftestUser, "client", client.State(), "server", server.State())

	if _, _, err = authenticate(p, salt, v, "wrong "+selftestPassword, clientOptions, serverOptions); !errors.Is(
		err, srp6.ErrBadCredentials) {
		return fmt.Errorf("%w: a wrong password was not rejected: %w", errSelftest, err)
	}

	return nil
}

// authenticate runs both sides of an exchange for the self-test user.
func authenticate(p *srp6.CryptoParams, salt []byte, v *big.Int, password string,
	clientOptions *srp6.ClientOptions, serverOptions *srp6.ServerOptions,
) (*srp6.ClientSession, *srp6.ServerSession, error) {
	client, err := srp6.NewClientSession(rand.Reader, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	server, err := srp6.NewServerSession(p, rand.Reader, serverOptions)
	if err != nil {
		return nil, nil, err
	}

	if err = client.Step1(selftestUser, password); err != nil {
		return nil, nil, err
	}

	B, err := server.Step1(selftestUser, salt, v)
	if err != nil {
		return nil, nil, err
	}

	credentials, err := client.Step2(p, salt, B)
	if err != nil {
		return nil, nil, err
	}

	M2, err := server.Step2(credentials.A, credentials.M1)
	if err != nil {
		return nil, nil, err
	}

	if err = client.Step3(M2); err != nil {
		return nil, nil, err
	}

	return client, server, nil
}
