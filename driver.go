package asppack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aspkit/asppack/config"
	"github.com/aspkit/asppack/core"
	"github.com/aspkit/asppack/instrument"
	"github.com/aspkit/asppack/publisher"
	"github.com/aspkit/asppack/utils"
	"github.com/aspkit/asppack/workspace"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Driver runs the packaging workflow once. Zero-valued collaborators fall
// back to the real implementations: the git client, CMake/CPack, the host
// platform and an S3 publisher built from the configuration.
type Driver struct {
	// WorkDir is where the search for the repository starts.
	WorkDir string
	// Backend selects the version-control client when VCS is nil; it
	// overrides the configured one.
	Backend    string
	ConfigFile string
	// Publish uploads the packages after a clean build.
	Publish bool

	VCS        core.VersionControl
	Toolchain  instrument.Toolchain
	Confirm    workspace.ConfirmFunc
	Platform   instrument.Platform
	Publisher  publisher.Publisher
	LoadConfig func(root string) (config.Config, error)
	Filesystem func(root string) billy.Filesystem

	Out io.Writer
	Log logrus.FieldLogger
}

func (d *Driver) out() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}

func (d *Driver) log() logrus.FieldLogger {
	if d.Log == nil {
		return NewLogger(os.Stderr, false, false)
	}
	return d.Log
}

func (d *Driver) vcs(backend string) (core.VersionControl, error) {
	if d.VCS != nil {
		return d.VCS, nil
	}
	return core.NewVersionControl(backend)
}

func (d *Driver) loadConfig(root string) (config.Config, error) {
	if d.LoadConfig != nil {
		return d.LoadConfig(root)
	}
	if err := config.LoadEnv(root); err != nil {
		return config.Config{}, err
	}
	return config.Load(root, d.ConfigFile)
}

func (d *Driver) filesystem(root string) billy.Filesystem {
	if d.Filesystem != nil {
		return d.Filesystem(root)
	}
	return osfs.New(root)
}

func (d *Driver) platform() instrument.Platform {
	if d.Platform != "" {
		return d.Platform
	}
	return instrument.HostPlatform()
}

func (d *Driver) toolchain(c config.Config) instrument.Toolchain {
	if d.Toolchain != nil {
		return d.Toolchain
	}
	return instrument.CMake{
		CMakePath: c.Tools.CMake,
		CPackPath: c.Tools.CPack,
		Stdout:    d.out(),
		Log:       d.log(),
	}
}

func (d *Driver) publisher(c config.Config) (publisher.Publisher, error) {
	if d.Publisher != nil {
		return d.Publisher, nil
	}
	if !c.Publish.Configured() {
		return nil, fmt.Errorf("publish endpoint and bucket are not configured")
	}
	return publisher.NewS3Store(c.Publish)
}

// Run executes the workflow. The returned context describes how far the
// run got; a non-nil error is always an *Error.
func (d *Driver) Run(ctx context.Context) (bc BuildContext, err error) {
	out, log := d.out(), d.log()

	workDir := d.WorkDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			return bc, environmentError(PhaseLocate, msgNotRepository, err)
		}
	}
	locator, err := d.vcs(d.Backend)
	if err != nil {
		return bc, environmentError(PhaseLocate, msgNotRepository, err)
	}
	root, err := Locate(ctx, locator, workDir, out)
	if err != nil {
		return bc, environmentError(PhaseLocate, msgNotRepository, err)
	}
	bc.RepoRoot = root
	log.WithField("root", root).Info("located repository")

	c, err := d.loadConfig(root)
	if err == nil {
		err = c.Validate()
	}
	if err != nil {
		return bc, environmentError(PhaseConfig, "Invalid configuration", err)
	}
	bc.BuildDir = c.BuildDir

	fs := d.filesystem(root)
	if err := workspace.ValidateShape(fs, c.ExpectedDirs); err != nil {
		return bc, environmentError(PhaseValidate, msgNotProject, err)
	}

	m := workspace.Manager{FS: fs, Dir: c.BuildDir, Confirm: d.Confirm}
	state, err := m.Prepare(ctx)
	if err != nil {
		return bc, workspaceError(c.BuildDir, err)
	}
	log.WithField("dir", c.BuildDir).Infof("build directory prepared (%s)", state)

	vcs, err := d.vcs(utils.FirstNonEmpty(d.Backend, c.VCS))
	if err != nil {
		return bc, environmentError(PhaseConfig, "Invalid configuration", err)
	}
	bc.IsClean = Assess(ctx, vcs, root, log)
	bc.Version = releaseVersion(ctx, vcs, root, out, log)

	bc.Platform = d.platform()
	buildDir := filepath.Join(root, filepath.FromSlash(c.BuildDir))
	plan, ok := instrument.PlanFor(bc.Platform, instrument.PlanOptions{
		SourceDir: root,
		BuildDir:  buildDir,
		Linux:     c.Linux,
		Windows:   c.Windows,
	})
	if !ok {
		_, _ = fmt.Fprintln(out, "Unrecognized system")
		reportDone(out, bc.IsClean)
		return bc, nil
	}

	err = instrument.Dispatch(ctx, plan, d.toolchain(c), out, log)
	if err != nil {
		var failed *instrument.ToolError
		if errors.As(err, &failed) {
			if failed.ErrStack != "" {
				log.Debugf("%s output:\n%s", failed.Step, utils.LastLines(failed.ErrStack, 40))
			}
			return bc, toolError(failed.Step, failed.ExitCode(), err)
		}
		return bc, toolError(plan.Title, 0, err)
	}

	bc.Artifacts, err = collectArtifacts(fs, c.BuildDir)
	if err != nil {
		return bc, environmentError(PhaseChecksum, "Can not checksum packages", err)
	}
	for _, a := range bc.Artifacts {
		_, _ = fmt.Fprintf(out, "%s  %s\n", a.SHA256, a.Name)
	}
	if c.Checksums && len(bc.Artifacts) > 0 {
		if err := writeSums(fs, c.BuildDir, bc.Artifacts); err != nil {
			return bc, environmentError(PhaseChecksum, "Can not write "+ChecksumFile, err)
		}
	}

	reportDone(out, bc.IsClean)

	if d.Publish {
		if err := d.publish(ctx, fs, c, bc); err != nil {
			return bc, err
		}
	}
	return bc, nil
}

func workspaceError(dir string, err error) *Error {
	switch {
	case errors.Is(err, workspace.ErrDeclined),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return declinedError(err)
	case errors.Is(err, workspace.ErrNotDirectory):
		return environmentError(PhaseWorkspace, fmt.Sprintf(msgNotDirectory, dir), err)
	}
	return environmentError(PhaseWorkspace, fmt.Sprintf("Can not prepare '%s'", dir), err)
}

func (d *Driver) publish(ctx context.Context, fs billy.Filesystem, c config.Config, bc BuildContext) error {
	if !bc.IsClean {
		return environmentError(PhasePublish, msgDirtyPublish, nil)
	}
	if len(bc.Artifacts) == 0 {
		d.log().Warn("no packages to publish")
		return nil
	}
	p, err := d.publisher(c)
	if err != nil {
		return environmentError(PhasePublish, "Can not publish packages", err)
	}

	names := make([]string, 0, len(bc.Artifacts)+1)
	for _, a := range bc.Artifacts {
		names = append(names, a.Name)
	}
	if c.Checksums {
		names = append(names, ChecksumFile)
	}
	for _, name := range names {
		if err := publishFile(ctx, p, fs, c.BuildDir, bc.Version, name); err != nil {
			return environmentError(PhasePublish, "Can not publish packages", err)
		}
		d.log().WithField("publisher", p.Name()).Infof("published %s", name)
	}
	_, _ = fmt.Fprintf(d.out(), "Published %d files\n", len(names))
	return nil
}

func publishFile(ctx context.Context, p publisher.Publisher, fs billy.Filesystem, dir, version, name string) error {
	file := filepath.ToSlash(filepath.Join(dir, name))
	fi, err := fs.Stat(file)
	if err != nil {
		return err
	}
	f, err := fs.Open(file)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return pkgerrors.WithMessage(p.Publish(ctx, publisher.Package{
		Version: version,
		Name:    name,
		Size:    fi.Size(),
		Content: f,
	}), name)
}
