/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Command ibc calls a chaincode deployed on a peer network from the shell.
//
//  ibc [--config file] [--peer n] <command> [args]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type globalFlags struct {
	configFile string
	peer       int
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var global globalFlags

	flags := pflag.NewFlagSet("ibc", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.SetInterspersed(false)
	flags.StringVarP(&global.configFile, "config", "c", "config.yaml", "configuration file (YAML or JSON)")
	flags.IntVarP(&global.peer, "peer", "p", 0, "index of the peer to send requests to")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ibc [flags] <command> [args]\n\nCommands:\n")
		for _, name := range commandNames() {
			fmt.Fprintf(stderr, "  %-10s %s\n", name, commands[name].summary)
		}
		fmt.Fprintf(stderr, "\nFlags:\n%s", flags.FlagUsages())
	}

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	name := flags.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		flags.Usage()
		return 2
	}

	env := &environment{global: global, out: stdout}
	defer env.close()

	if err := cmd.run(ctx, env, flags.Args()[1:]); err != nil {
		fmt.Fprintf(stderr, "ibc %s: %s\n", name, err)
		if _, ok := err.(usageError); ok {
			return 2
		}
		return 1
	}
	return 0
}
