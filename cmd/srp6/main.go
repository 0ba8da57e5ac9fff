// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Command srp6 creates SRP-6a salts and verifiers and checks a configuration with an in-process exchange.
package main

import (
	"github.com/Fi5t/srp6/cmd/srp6/internal/cmd"
)

func main() {
	cmd.Execute()
}
