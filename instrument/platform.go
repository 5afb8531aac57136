package instrument

import "runtime"

type Platform string

const (
	Linux   Platform = "linux"
	Windows Platform = "windows"
	Other   Platform = "other"
)

// DetectPlatform maps a GOOS value onto the platforms packages are made
// for.
func DetectPlatform(goos string) Platform {
	switch goos {
	case "linux":
		return Linux
	case "windows":
		return Windows
	}
	return Other
}

func HostPlatform() Platform {
	return DetectPlatform(runtime.GOOS)
}
