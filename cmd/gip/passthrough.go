// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AleutianAI/gip/cmd/gip/internal/gitx"
	"github.com/AleutianAI/gip/pkg/ux"
)

// knownCommands returns the set of subcommand names cobra dispatches
// itself, including the built-ins cobra registers at execute time.
func knownCommands() map[string]bool {
	known := map[string]bool{
		"help":       true,
		"completion": true,
	}
	for _, c := range rootCmd.Commands() {
		known[c.Name()] = true
		for _, alias := range c.Aliases {
			known[alias] = true
		}
	}
	return known
}

// isPassthrough reports whether argv names a git subcommand gip does not
// wrap. Flags stay with cobra so --help and --personality keep working on
// the root command.
func isPassthrough(args []string) bool {
	if len(args) == 0 {
		return false
	}
	if strings.HasPrefix(args[0], "-") {
		return false
	}
	return !knownCommands()[args[0]]
}

// execPassthrough hands the full argv to git verbatim and exits with
// git's status, so gip stays invisible for every subcommand it does not
// wrap. Never returns.
func execPassthrough(args []string) {
	ux.InitPersonality()

	err := gitPassthrough(context.Background(), gitx.NewExecRunner(), args...)
	if err == nil {
		os.Exit(0)
	}

	// git's own failure output already reached the terminal; only a
	// failure to start git needs a message from us.
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Wrapped != nil {
		ux.Error(fmt.Sprintf("Failed to run git: %v", err))
	}
	os.Exit(exitCode(err))
}

// gitPassthrough runs a git subcommand with inherited stdio. A non-zero
// exit comes back as a *CommandError carrying the status so callers can
// mirror it.
func gitPassthrough(ctx context.Context, runner gitx.Runner, args ...string) error {
	name := "git " + strings.Join(args, " ")

	code, err := runner.RunPassthrough(ctx, "", args...)
	if err != nil {
		return WrapCommandError(err, name, -1, "")
	}
	if code != 0 {
		return NewCommandError(name, code, "", nil)
	}
	return nil
}

// exitCode extracts the process exit status carried by err. Errors that
// carry no usable status map to 1.
func exitCode(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode >= 0 {
		return cmdErr.ExitCode
	}
	return 1
}
