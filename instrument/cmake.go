package instrument

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	CPackSourceConfig = "CPackSourceConfig.cmake"
	CPackBinaryConfig = "CPackConfig.cmake"
)

// CMake drives the cmake and cpack executables.
type CMake struct {
	CMakePath string
	CPackPath string
	Runner    Runner
	// Stdout receives the live tool output; it is always captured as well.
	Stdout io.Writer
	Log    logrus.FieldLogger
}

func (c CMake) runner() Runner {
	if c.Runner == nil {
		return ExecRunner{}
	}
	return c.Runner
}

func (c CMake) cmake() string {
	if strings.TrimSpace(c.CMakePath) == "" {
		return "cmake"
	}
	return c.CMakePath
}

func (c CMake) cpack() string {
	if strings.TrimSpace(c.CPackPath) == "" {
		return "cpack"
	}
	return c.CPackPath
}

func (c CMake) run(ctx context.Context, cmd Command) Response {
	if c.Log != nil {
		c.Log.WithField("dir", cmd.Dir).Debugf("running %s", cmd)
	}
	var buf bytes.Buffer
	var w io.Writer = &buf
	if c.Stdout != nil {
		w = io.MultiWriter(c.Stdout, &buf)
	}
	err := c.runner().Run(ctx, cmd, w, w)
	if err != nil {
		if ctx.Err() != nil {
			return ResponseError(err)
		}
		return ResponseErrorWithStack(err, buf.String())
	}
	return ResponseSuccess()
}

func (c CMake) Configure(ctx context.Context, opts ConfigureOptions) Response {
	args := make([]string, 0, len(opts.Defines)+1)
	for _, define := range opts.Defines {
		args = append(args, "-D"+define)
	}
	args = append(args, opts.SourceDir)
	return c.run(ctx, Command{Dir: opts.BuildDir, Name: c.cmake(), Args: args})
}

func (c CMake) Build(ctx context.Context, opts BuildOptions) Response {
	args := []string{"--build", "."}
	if strings.TrimSpace(opts.Config) != "" {
		args = append(args, "--config", opts.Config)
	}
	return c.run(ctx, Command{Dir: opts.BuildDir, Name: c.cmake(), Args: args})
}

func (c CMake) Package(ctx context.Context, opts PackageOptions) Response {
	configFile := CPackBinaryConfig
	if opts.Kind == Source {
		configFile = CPackSourceConfig
	}
	args := []string{"--config", configFile}
	if len(opts.Generators) > 0 {
		args = append(args, "-G", strings.Join(opts.Generators, ";"))
	}
	return c.run(ctx, Command{Dir: opts.BuildDir, Name: c.cpack(), Args: args})
}
