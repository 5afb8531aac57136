package utils

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
)

func ChecksumSHA256(fs billy.Filesystem, file string) (string, error) {
	hasher := sha256.New()
	f, err := fs.Open(file)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
