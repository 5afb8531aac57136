package asppack

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aspkit/asppack/core"
	"github.com/sirupsen/logrus"
)

// Locate returns the top level of the working tree containing workDir and
// announces it when the two differ. The process working directory is left
// alone.
func Locate(ctx context.Context, vcs core.VersionControl, workDir string, out io.Writer) (string, error) {
	root, err := vcs.TopLevel(ctx, workDir)
	if err != nil {
		return "", err
	}
	root = filepath.Clean(root)
	if !samePath(workDir, root) {
		_, _ = fmt.Fprintf(out, "Working from repository home %s\n", root)
	}
	return root, nil
}

func samePath(a, b string) bool {
	return resolve(a) == resolve(b)
}

func resolve(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	return filepath.Clean(p)
}

// Assess reports whether the tree at root is clean. A status query that
// fails counts as dirty.
func Assess(ctx context.Context, vcs core.VersionControl, root string, log logrus.FieldLogger) bool {
	report, err := vcs.Status(ctx, root)
	if err != nil {
		log.WithError(err).Warn("can not query repository status, treating tree as dirty")
		return false
	}
	if report != "" {
		log.Infof("repository has uncommitted changes:\n%s", report)
	}
	return report == ""
}

// releaseVersion returns the version tag at HEAD, or "" when HEAD is not
// tagged with a valid version.
func releaseVersion(ctx context.Context, vcs core.VersionControl, root string, out io.Writer, log logrus.FieldLogger) string {
	tag, err := vcs.Describe(ctx, root)
	if err != nil {
		log.WithError(err).Debug("can not describe HEAD")
		return ""
	}
	if tag == "" {
		log.Debug("HEAD is not tagged")
		return ""
	}
	v, err := core.ParseVersion(tag)
	if err != nil {
		log.WithError(err).Infof("tag %s is not a release version", tag)
		return ""
	}
	_, _ = fmt.Fprintf(out, "Release version %s (0x%08x)\n", v, v.Packed())
	return v.String()
}
