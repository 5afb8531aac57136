package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/aspkit/asppack"
	"github.com/aspkit/asppack/config"
	"github.com/aspkit/asppack/utils"
)

const version = "0.1.0"

var cli struct {
	ConfigFile string `name:"config" short:"c" help:"Project configuration file (default <root>/asppack.yml)." placeholder:"FILE" type:"path"`
	Yes        bool   `short:"y" help:"Replace an existing build directory without asking."`
	VCS        string `name:"vcs" help:"Version-control backend (git or gogit)." placeholder:"BACKEND"`
	Publish    bool   `help:"Upload packages after a clean build."`
	Verbose    bool   `short:"v" help:"Enable verbose output."`
	Debug      bool   `short:"d" help:"Enable debug output."`

	Package PackageCmd `cmd:"" default:"1" help:"Build the packages for this platform."`
	Config  ConfigCmd  `cmd:"" help:"Print the effective configuration."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), interruptSignals()...)
	defer cancel()

	kongCtx := kong.Parse(&cli,
		kong.Name(config.AppName),
		kong.Description("Build the Asp release packages for the host platform."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	return reportError(os.Stderr, kongCtx.Run(), cli.Verbose || cli.Debug)
}

// reportError prints err for the operator and returns the process exit
// status: 0 without an error, the status carried by an *asppack.Error
// (a failed tool's own one included) and 1 for anything else.
func reportError(w io.Writer, err error, verbose bool) int {
	if err == nil {
		return 0
	}
	var runErr *asppack.Error
	if !errors.As(err, &runErr) {
		_, _ = fmt.Fprintln(w, utils.TextRed(err.Error()))
		return 1
	}
	_, _ = fmt.Fprintln(w, utils.TextRed(runErr.Message))
	if verbose && runErr.Err != nil {
		_, _ = fmt.Fprintln(w, utils.TextYellow(fmt.Sprintf("[%s] %v", runErr.Phase, runErr.Err)))
	}
	if runErr.ExitCode <= 0 {
		return 1
	}
	return runErr.ExitCode
}
