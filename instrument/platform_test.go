package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	assert.Equal(t, Linux, DetectPlatform("linux"))
	assert.Equal(t, Windows, DetectPlatform("windows"))
	for _, goos := range []string{"darwin", "freebsd", "openbsd", "plan9", "js", ""} {
		assert.Equal(t, Other, DetectPlatform(goos), goos)
	}
}
