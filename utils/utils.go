package utils

import (
	"os"
	"strings"
)

func IsStringEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

func Trim(s string) string {
	return strings.TrimSpace(s)
}

func IsNotExists(s string) bool {
	_, err := os.Stat(s)
	return os.IsNotExist(err)
}

// ReadEnvVariableIfHas expands str when it is written as $NAME or ${NAME}.
// An unset variable leaves the original text in place.
func ReadEnvVariableIfHas(str string) string {
	origin := Trim(str)
	if strings.HasPrefix(origin, "$") {
		result := os.ExpandEnv(origin)
		if !IsStringEmpty(result) {
			return result
		}
	}
	return origin
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if !IsStringEmpty(v) {
			return Trim(v)
		}
	}
	return ""
}

// LastLines returns at most n trailing lines of s.
func LastLines(s string, n int) string {
	s = strings.TrimRight(s, "\r\n")
	if n <= 0 || s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
