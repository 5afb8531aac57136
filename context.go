package asppack

import (
	"github.com/aspkit/asppack/instrument"
)

// Artifact is a package found in the build directory after packaging.
type Artifact struct {
	Name   string
	Size   int64
	SHA256 string
}

// BuildContext is filled in as a run progresses. Fields after a failed
// phase keep their zero values.
type BuildContext struct {
	RepoRoot  string
	BuildDir  string
	IsClean   bool
	Platform  instrument.Platform
	Version   string
	Artifacts []Artifact
}
