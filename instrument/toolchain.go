package instrument

import "context"

type PackageKind int

const (
	Source PackageKind = iota
	Binary
)

func (k PackageKind) String() string {
	if k == Source {
		return "source"
	}
	return "binary"
}

type ConfigureOptions struct {
	SourceDir string
	BuildDir  string
	// Defines are NAME=VALUE cache entries.
	Defines []string
}

type BuildOptions struct {
	BuildDir string
	Config   string
}

type PackageOptions struct {
	BuildDir   string
	Kind       PackageKind
	Generators []string
}

// Toolchain configures, builds and packages the project. Every call blocks
// until the underlying tool exits.
type Toolchain interface {
	Configure(ctx context.Context, opts ConfigureOptions) Response
	Build(ctx context.Context, opts BuildOptions) Response
	Package(ctx context.Context, opts PackageOptions) Response
}
