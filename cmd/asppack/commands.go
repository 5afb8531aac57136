package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aspkit/asppack"
	"github.com/aspkit/asppack/config"
	"github.com/aspkit/asppack/core"
	"github.com/aspkit/asppack/utils"
	"github.com/aspkit/asppack/workspace"
)

type PackageCmd struct{}

func (c *PackageCmd) Run(ctx context.Context) error {
	confirm := workspace.PromptConfirm(os.Stdin, os.Stdout)
	if cli.Yes {
		confirm = workspace.AssumeYes
	}
	d := &asppack.Driver{
		Backend:    cli.VCS,
		ConfigFile: cli.ConfigFile,
		Publish:    cli.Publish,
		Confirm:    confirm,
		Out:        os.Stdout,
		Log:        asppack.NewLogger(os.Stderr, cli.Verbose, cli.Debug),
	}
	_, err := d.Run(ctx)
	return err
}

// ConfigCmd prints the configuration a package run would use. Outside a
// repository only the defaults and the global file apply.
type ConfigCmd struct{}

func (c *ConfigCmd) Run(ctx context.Context) error {
	log := asppack.NewLogger(os.Stderr, cli.Verbose, cli.Debug)
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	root := cwd
	vcs, err := core.NewVersionControl(utils.FirstNonEmpty(cli.VCS, core.BackendGit))
	if err != nil {
		return err
	}
	if top, err := vcs.TopLevel(ctx, cwd); err == nil {
		root = top
	} else {
		log.WithError(err).Info("not inside a repository, showing global configuration")
	}

	if err := config.LoadEnv(root); err != nil {
		return err
	}
	cfg, err := config.Load(root, cli.ConfigFile)
	if err != nil {
		return err
	}
	log.WithField("global", config.GlobalConfigFile()).Debug("configuration loaded")
	return config.WriteConfig(os.Stdout, cfg)
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("%s %s\n", config.AppName, version)
	return nil
}
