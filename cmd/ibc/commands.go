/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/ibm-blockchain/ibc-go/pkg/client/chaincode"
	"github.com/ibm-blockchain/ibc-go/pkg/core/config"
	"github.com/ibm-blockchain/ibc-go/pkg/fab/ccscanner"
	"github.com/ibm-blockchain/ibc-go/pkg/fabsdk"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	yaml "gopkg.in/yaml.v2"
)

type command struct {
	summary string
	run     func(ctx context.Context, env *environment, args []string) error
}

var commands = map[string]command{
	"stats":    {"print the chain height and head hashes", runStats},
	"block":    {"print block <id>", runBlock},
	"scan":     {"list the operations dispatched by the chaincode in <dir>", runScan},
	"load":     {"load the network and chaincode, list the bound operations", runLoad},
	"describe": {"print the chaincode details [-o json|yaml]", runDescribe},
	"read":     {"read the state value <name>", runRead},
	"query":    {"call the chaincode query function with <args...>", runQuery},
	"write":    {"write <name> <value>", runWrite},
	"remove":   {"delete the state value <name>", runRemove},
	"invoke":   {"call the bound operation <fn> with [args...]", runInvoke},
	"deploy":   {"deploy the chaincode and call <fn> [args...] [--save dir]", runDeploy},
	"monitor":  {"print chain growth, serve /metrics and /healthz [--listen addr]", runMonitor},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type usageError string

func (e usageError) Error() string {
	return string(e)
}

// environment carries the session shared by a command invocation
type environment struct {
	global globalFlags
	out    io.Writer
	sdk    *fabsdk.SDK
}

func (e *environment) session(opts ...fabsdk.Option) (*fabsdk.SDK, error) {
	if e.sdk != nil {
		return e.sdk, nil
	}
	sdk, err := fabsdk.New(config.FromFile(e.global.configFile), opts...)
	if err != nil {
		return nil, err
	}
	e.sdk = sdk
	return sdk, nil
}

// connect registers the network without loading the chaincode
func (e *environment) connect(ctx context.Context) (*fabsdk.SDK, error) {
	sdk, err := e.session()
	if err != nil {
		return nil, err
	}
	if err := sdk.LoadNetwork(ctx); err != nil {
		return nil, err
	}
	return sdk, e.selectPeer()
}

func (e *environment) load(ctx context.Context, opts ...fabsdk.Option) (*chaincode.Client, error) {
	sdk, err := e.session(opts...)
	if err != nil {
		return nil, err
	}
	cc, err := sdk.Load(ctx)
	if err != nil {
		return nil, err
	}
	return cc, e.selectPeer()
}

func (e *environment) selectPeer() error {
	if e.global.peer != 0 && !e.sdk.SwitchPeer(e.global.peer) {
		return usageError(fmt.Sprintf("peer index %d out of range", e.global.peer))
	}
	return nil
}

func (e *environment) close() {
	if e.sdk != nil {
		e.sdk.Close()
	}
}

func (e *environment) printJSON(v interface{}) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func requireArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return usageError("usage: " + usage)
	}
	return nil
}

func runStats(ctx context.Context, env *environment, args []string) error {
	sdk, err := env.connect(ctx)
	if err != nil {
		return err
	}
	stats, err := sdk.ChainStats(ctx)
	if err != nil {
		return err
	}
	return env.printJSON(stats)
}

func runBlock(ctx context.Context, env *environment, args []string) error {
	if err := requireArgs(args, 1, "block <id>"); err != nil {
		return err
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return usageError(fmt.Sprintf("invalid block id %q", args[0]))
	}
	sdk, err := env.connect(ctx)
	if err != nil {
		return err
	}
	block, err := sdk.BlockStats(ctx, id)
	if err != nil {
		return err
	}
	return env.printJSON(block)
}

func runScan(ctx context.Context, env *environment, args []string) error {
	flags := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	contractType := flags.String("type", ccscanner.DefaultContractType, "contract type of the entry point receiver")
	function := flags.String("function", ccscanner.DefaultEntryFunction, "entry point function name")
	if err := flags.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if err := requireArgs(flags.Args(), 1, "scan <dir> [--type T] [--function F]"); err != nil {
		return err
	}

	discoverer, err := ccscanner.NewRegexpDiscoverer(*contractType, *function)
	if err != nil {
		return err
	}
	result, err := ccscanner.New(discoverer).ScanDir(flags.Arg(0))
	if err != nil {
		return err
	}
	return env.printJSON(result)
}

func runLoad(ctx context.Context, env *environment, args []string) error {
	cc, err := env.load(ctx)
	if err != nil {
		return err
	}
	for _, name := range cc.Operations() {
		fmt.Fprintln(env.out, name)
	}
	return nil
}

func runDescribe(ctx context.Context, env *environment, args []string) error {
	flags := pflag.NewFlagSet("describe", pflag.ContinueOnError)
	output := flags.StringP("output", "o", "json", "output format: json or yaml")
	if err := flags.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if *output != "json" && *output != "yaml" {
		return usageError(fmt.Sprintf("unsupported output format %q", *output))
	}

	cc, err := env.load(ctx)
	if err != nil {
		return err
	}
	details := cc.Details()
	if *output == "json" {
		return env.printJSON(details)
	}

	out, err := yaml.Marshal(details)
	if err != nil {
		return errors.Wrap(err, "encoding chaincode details failed")
	}
	_, err = env.out.Write(out)
	return err
}

func runRead(ctx context.Context, env *environment, args []string) error {
	if err := requireArgs(args, 1, "read <name>"); err != nil {
		return err
	}
	cc, err := env.load(ctx)
	if err != nil {
		return err
	}
	value, err := cc.Read(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(env.out, value)
	return nil
}

func runQuery(ctx context.Context, env *environment, args []string) error {
	cc, err := env.load(ctx)
	if err != nil {
		return err
	}
	value, err := cc.Query(ctx, args...)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.out, value)
	return nil
}

func runWrite(ctx context.Context, env *environment, args []string) error {
	if err := requireArgs(args, 2, "write <name> <value>"); err != nil {
		return err
	}
	cc, err := env.load(ctx)
	if err != nil {
		return err
	}
	resp, err := cc.Write(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	return env.printJSON(resp)
}

func runRemove(ctx context.Context, env *environment, args []string) error {
	if err := requireArgs(args, 1, "remove <name>"); err != nil {
		return err
	}
	cc, err := env.load(ctx)
	if err != nil {
		return err
	}
	resp, err := cc.Remove(ctx, args[0])
	if err != nil {
		return err
	}
	return env.printJSON(resp)
}

func runInvoke(ctx context.Context, env *environment, args []string) error {
	if err := requireArgs(args, 1, "invoke <fn> [args...]"); err != nil {
		return err
	}
	cc, err := env.load(ctx)
	if err != nil {
		return err
	}
	resp, err := cc.Invoke(ctx, args[0], args[1:]...)
	if err != nil {
		return err
	}
	return env.printJSON(resp)
}

func runDeploy(ctx context.Context, env *environment, args []string) error {
	flags := pflag.NewFlagSet("deploy", pflag.ContinueOnError)
	save := flags.String("save", "", "directory the chaincode details are saved to")
	if err := flags.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if err := requireArgs(flags.Args(), 1, "deploy <fn> [args...] [--save dir]"); err != nil {
		return err
	}

	cc, err := env.load(ctx)
	if err != nil {
		return err
	}
	resp, err := cc.Deploy(ctx, flags.Arg(0), flags.Args()[1:], *save)
	if err != nil {
		return err
	}
	return env.printJSON(resp)
}
