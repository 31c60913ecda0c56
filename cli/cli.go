package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/apml/cli/cmd"
)

// Name and Description identify the command-line tool.
const (
	Name        = "apml"
	Description = "Inspect and edit shell-style variable definition files " +
		"without disturbing their formatting."
)

// CLI is the top-level command-line interface for apml.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	List  cmd.List  `cmd:"" help:"List variable definitions"`
	Get   cmd.Get   `cmd:"" help:"Print the value of a variable"`
	Set   cmd.Set   `cmd:"" help:"Add or rewrite a variable definition"`
	Unset cmd.Unset `cmd:"" help:"Remove a variable definition"`
	Fmt   cmd.Fmt   `cmd:"" help:"Rewrite a document in canonical form"`
	Bench cmd.Bench `cmd:"" help:"Measure parser throughput over a file tree"`
}

// Run executes the apml CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon
// completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(Name),
		kong.Description(Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				NoExpandSubcommands: true,
			}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
