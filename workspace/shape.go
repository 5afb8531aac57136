package workspace

import (
	"errors"
	"os"

	"github.com/go-git/go-billy/v5"
	pkgerrors "github.com/pkg/errors"
)

// ValidateShape returns ErrNotProject unless every entry of dirs is a
// directory at the root of fs.
func ValidateShape(fs billy.Filesystem, dirs []string) error {
	for _, dir := range dirs {
		fi, err := fs.Stat(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return pkgerrors.WithMessage(ErrNotProject, dir)
			}
			return err
		}
		if !fi.IsDir() {
			return pkgerrors.WithMessage(ErrNotProject, dir)
		}
	}
	return nil
}
