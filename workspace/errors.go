package workspace

import "errors"

var (
	ErrNotProject   = errors.New("missing expected project directory")
	ErrDeclined     = errors.New("replacement of build directory declined")
	ErrNotDirectory = errors.New("build directory path is not a directory")
)
