package asppack

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aspkit/asppack/utils"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
)

const (
	ChecksumFile = "SHA256SUMS"

	msgDone  = "Done building packages"
	msgDirty = "WARNING: Packages were built from a dirty repository. DO NOT DEPLOY!!!"
)

var packageSuffixes = []string{
	".tar.gz", ".tar.bz2", ".tgz", ".tbz2", ".zip", ".exe", ".msi", ".deb", ".rpm",
}

func isPackage(name string) bool {
	for _, suffix := range packageSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// collectArtifacts hashes every package file directly inside dir, in name
// order.
func collectArtifacts(fs billy.Filesystem, dir string) ([]Artifact, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", dir)
	}
	artifacts := make([]Artifact, 0)
	for _, fi := range entries {
		if !fi.Mode().IsRegular() || !isPackage(fi.Name()) {
			continue
		}
		sum, err := utils.ChecksumSHA256(fs, path.Join(dir, fi.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "checksum %s", fi.Name())
		}
		artifacts = append(artifacts, Artifact{
			Name:   fi.Name(),
			Size:   fi.Size(),
			SHA256: sum,
		})
	}
	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Name < artifacts[j].Name
	})
	return artifacts, nil
}

// formatSums renders artifacts the way sha256sum does, so the file can be
// checked with sha256sum -c.
func formatSums(artifacts []Artifact) string {
	var sb strings.Builder
	for _, a := range artifacts {
		sb.WriteString(fmt.Sprintf("%s  %s\n", a.SHA256, a.Name))
	}
	return sb.String()
}

func writeSums(fs billy.Filesystem, dir string, artifacts []Artifact) error {
	file := path.Join(dir, ChecksumFile)
	err := util.WriteFile(fs, file, []byte(formatSums(artifacts)), 0644)
	return errors.Wrapf(err, "write %s", file)
}

func reportDone(out io.Writer, clean bool) {
	_, _ = fmt.Fprintln(out, msgDone)
	if !clean {
		_, _ = fmt.Fprintln(out, utils.TextRed(msgDirty))
	}
}
