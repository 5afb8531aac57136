package publisher

import (
	"context"
	"io"
	"path"
	"strings"
)

// Snapshot is the version segment used when HEAD carries no release tag.
const Snapshot = "snapshot"

// Package is one file handed to a Publisher.
type Package struct {
	Version string
	Name    string
	Size    int64
	Content io.Reader
}

type Publisher interface {
	Name() string
	Publish(ctx context.Context, pkg Package) error
}

// ObjectKey places name under prefix and the release version, e.g.
// releases/1.4.0/asp-1.4.0-Linux.tar.gz.
func ObjectKey(prefix, version, name string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		version = Snapshot
	}
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	return strings.TrimLeft(path.Join(prefix, version, path.Base(name)), "/")
}

var contentTypes = []struct {
	suffix      string
	contentType string
}{
	{".tar.gz", "application/gzip"},
	{".tgz", "application/gzip"},
	{".tar.bz2", "application/x-bzip2"},
	{".tbz2", "application/x-bzip2"},
	{".zip", "application/zip"},
	{".deb", "application/vnd.debian.binary-package"},
	{".rpm", "application/x-rpm"},
	{".exe", "application/vnd.microsoft.portable-executable"},
	{".msi", "application/x-msi"},
	{"SHA256SUMS", "text/plain; charset=utf-8"},
}

func ContentType(name string) string {
	for _, ct := range contentTypes {
		if strings.HasSuffix(name, ct.suffix) {
			return ct.contentType
		}
	}
	return "application/octet-stream"
}
