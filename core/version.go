package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Each component has to fit in one byte of the packed version.
const maxComponent = 255

type Version struct {
	Major int
	Minor int
	Patch int
	Tweak int
}

// ParseVersion accepts major.minor.patch or major.minor.patch.tweak,
// optionally prefixed with v.
func ParseVersion(s string) (v Version, err error) {
	str := strings.TrimSpace(s)
	str = strings.TrimPrefix(strings.TrimPrefix(str, "v"), "V")
	parts := strings.Split(str, ".")
	if len(parts) != 3 && len(parts) != 4 {
		err = fmt.Errorf("can not parse string %s to version", s)
		return
	}
	components := []*int{&v.Major, &v.Minor, &v.Patch, &v.Tweak}
	for i, part := range parts {
		n, e := strconv.Atoi(part)
		if e != nil || n < 0 {
			err = fmt.Errorf("version component %d, '%s', invalid", i, part)
			return
		}
		if n > maxComponent {
			err = fmt.Errorf("version component %d exceeds %d", i, maxComponent)
			return
		}
		*components[i] = n
	}
	return
}

// Packed returns the 32-bit encoding used by the generated version header.
func (v Version) Packed() uint32 {
	return uint32(v.Major)<<24 | uint32(v.Minor)<<16 | uint32(v.Patch)<<8 | uint32(v.Tweak)
}

func (v Version) String() string {
	if v.Tweak != 0 {
		return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Tweak)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
