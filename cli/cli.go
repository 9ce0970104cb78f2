package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/liquid/cli/cmd"
	"github.com/ardnew/liquid/pkg"
)

// CLI is the top-level command-line interface for liquid.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit."`

	Data    []string `help:"YAML or JSON data file(s) defining template variables; later files win" placeholder:"FILE" short:"d" type:"existingfile"`
	Filters []string `help:"YAML file(s) defining expression filters"                               placeholder:"FILE" short:"F" type:"existingfile"`

	Render cmd.Render  `cmd:"" default:"withargs" help:"Render templates"`
	Tree   cmd.Tree    `cmd:""                    help:"Print the parsed template tree"`
	Tokens cmd.Tokens  `cmd:""                    help:"Print the classified template elements"`
	Filter cmd.Filters `cmd:""                    help:"List available filters" name:"filters"`
	Repl   cmd.Repl    `cmd:""                    help:"Render templates interactively"`
	Init   cmd.Init    `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the liquid CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, exit, nil, args...)
}

// run is Run with additional kong options applied last.
func run(
	ctx context.Context,
	exit func(code int),
	opts []kong.Option,
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	groups := []kong.Group{cli.Log.group()}
	if g := cli.Pprof.group(); g.Key != "" {
		groups = append(groups, g)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli, append([]kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(groups),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(baseConfig), configFilePath),
		vars,
	}, opts...)...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithDataFiles(ctx, cli.Data)
	ctx = cmd.WithFilterFiles(ctx, cli.Filters)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
