// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package srp6

import (
	"log/slog"
	"time"
)

// ClientOptions override the default routines and session settings of a ClientSession.
// Routines overridden on the client must be overridden the same way on the server, or authentication fails.
type ClientOptions struct {
	// XRoutine computes the password key x. The verifier must have been generated with the same routine.
	XRoutine XRoutine

	// URoutine computes the scrambling parameter u.
	URoutine URoutine

	// ClientEvidence computes M1.
	ClientEvidence ClientEvidenceRoutine

	// ServerEvidence computes the expected M2.
	ServerEvidence ServerEvidenceRoutine

	// Logger receives debug events. Secrets are never logged. Defaults to discarding everything.
	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Timeout is the maximum inactivity between two steps. 0 disables it.
	Timeout time.Duration
}

// ServerOptions override the default routines and session settings of a ServerSession.
type ServerOptions struct {
	URoutine       URoutine
	ClientEvidence ClientEvidenceRoutine
	ServerEvidence ServerEvidenceRoutine
	Logger         *slog.Logger
	Now            func() time.Time
	Timeout        time.Duration
}

// VerifierOptions override the default XRoutine of a VerifierGenerator.
type VerifierOptions struct {
	XRoutine XRoutine
}

type sessionOptions struct {
	x       XRoutine
	u       URoutine
	m1      ClientEvidenceRoutine
	m2      ServerEvidenceRoutine
	logger  *slog.Logger
	now     func() time.Time
	timeout time.Duration
}

func defaultSessionOptions() *sessionOptions {
	return &sessionOptions{
		x:       DefaultXRoutine,
		u:       DefaultURoutine,
		m1:      DefaultClientEvidenceRoutine,
		m2:      DefaultServerEvidenceRoutine,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
		timeout: 0,
	}
}

// set overrides the defaults with the non-zero values given.
func (o *sessionOptions) set(u URoutine, m1 ClientEvidenceRoutine, m2 ServerEvidenceRoutine,
	logger *slog.Logger, now func() time.Time, timeout time.Duration,
) error {
	if timeout < 0 {
		return ErrInvalidArgument.Join(errNegativeTimeout)
	}

	o.timeout = timeout

	if u != nil {
		o.u = u
	}

	if m1 != nil {
		o.m1 = m1
	}

	if m2 != nil {
		o.m2 = m2
	}

	if logger != nil {
		o.logger = logger
	}

	if now != nil {
		o.now = now
	}

	return nil
}

func parseClientOptions(options []*ClientOptions) (*sessionOptions, error) {
	o := defaultSessionOptions()

	if len(options) == 0 || options[0] == nil {
		return o, nil
	}

	in := options[0]
	if err := o.set(in.URoutine, in.ClientEvidence, in.ServerEvidence, in.Logger, in.Now, in.Timeout); err != nil {
		return nil, err
	}

	if in.XRoutine != nil {
		o.x = in.XRoutine
	}

	return o, nil
}

func parseServerOptions(options []*ServerOptions) (*sessionOptions, error) {
	o := defaultSessionOptions()

	if len(options) == 0 || options[0] == nil {
		return o, nil
	}

	in := options[0]
	if err := o.set(in.URoutine, in.ClientEvidence, in.ServerEvidence, in.Logger, in.Now, in.Timeout); err != nil {
		return nil, err
	}

	return o, nil
}

func parseVerifierOptions(options []*VerifierOptions) XRoutine {
	if len(options) == 0 || options[0] == nil || options[0].XRoutine == nil {
		return DefaultXRoutine
	}

	return options[0].XRoutine
}
