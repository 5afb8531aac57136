package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	pkgerrors "github.com/pkg/errors"
)

const DefaultDirMode os.FileMode = 0755

// Manager owns the lifecycle of the build directory Dir inside FS.
type Manager struct {
	FS      billy.Filesystem
	Dir     string
	Confirm ConfirmFunc
}

// State describes what Prepare found before it recreated the directory.
type State int

const (
	Absent State = iota
	Replaced
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Replaced:
		return "replaced"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Prepare leaves an empty Dir behind. An existing directory is only removed
// after Confirm agrees; anything else occupying the path is an error.
// Cancelling ctx while Confirm waits leaves the directory untouched.
func (m Manager) Prepare(ctx context.Context) (State, error) {
	state := Absent
	fi, err := m.FS.Lstat(m.Dir)
	switch {
	case err == nil && fi.IsDir():
		if m.Confirm == nil {
			return state, ErrDeclined
		}
		ok, err := m.Confirm(ctx, fmt.Sprintf("Replace '%s' directory with fresh build? ", m.Dir))
		if err != nil {
			return state, pkgerrors.Wrap(err, "read confirmation")
		}
		if !ok {
			return state, ErrDeclined
		}
		if err := util.RemoveAll(m.FS, m.Dir); err != nil {
			return state, pkgerrors.Wrapf(err, "remove %s", m.Dir)
		}
		state = Replaced
	case err == nil:
		return state, pkgerrors.WithMessage(ErrNotDirectory, m.Dir)
	case !errors.Is(err, os.ErrNotExist):
		return state, pkgerrors.Wrapf(err, "stat %s", m.Dir)
	}

	if err := m.FS.MkdirAll(m.Dir, DefaultDirMode); err != nil {
		return state, pkgerrors.Wrapf(err, "create %s", m.Dir)
	}
	return state, nil
}
