package instrument

import (
	"context"
	"strings"

	"github.com/aspkit/asppack/config"
)

// Step is one labelled toolchain invocation.
type Step struct {
	Label string
	Run   func(ctx context.Context, t Toolchain) Response
}

type Plan struct {
	Platform Platform
	Title    string
	Steps    []Step
}

type PlanOptions struct {
	SourceDir string
	BuildDir  string
	Linux     config.PlatformConfig
	Windows   config.PlatformConfig
}

type PlanFunc func(opts PlanOptions) Plan

var plans = make(map[Platform]PlanFunc)

func normalize(p Platform) Platform {
	return Platform(strings.ToLower(strings.TrimSpace(string(p))))
}

func RegisterPlan(p Platform, f PlanFunc) {
	plans[normalize(p)] = f
}

func init() {
	RegisterPlan(Linux, linuxPlan)
	RegisterPlan(Windows, windowsPlan)
}

// PlanFor returns the packaging steps for p. ok is false for a platform
// nothing is packaged on.
func PlanFor(p Platform, opts PlanOptions) (plan Plan, ok bool) {
	f, ok := plans[normalize(p)]
	if !ok || f == nil {
		return Plan{Platform: p}, false
	}
	return f(opts), true
}

func configureStep(opts PlanOptions, defines []string) Step {
	return Step{
		Label: "Configuring",
		Run: func(ctx context.Context, t Toolchain) Response {
			return t.Configure(ctx, ConfigureOptions{
				SourceDir: opts.SourceDir,
				BuildDir:  opts.BuildDir,
				Defines:   defines,
			})
		},
	}
}

func packageStep(label string, opts PlanOptions, kind PackageKind, generators []string) Step {
	return Step{
		Label: label,
		Run: func(ctx context.Context, t Toolchain) Response {
			return t.Package(ctx, PackageOptions{
				BuildDir:   opts.BuildDir,
				Kind:       kind,
				Generators: generators,
			})
		},
	}
}

// Linux packaging relies on cpack to build what it needs, so there is no
// separate build step.
func linuxPlan(opts PlanOptions) Plan {
	c := opts.Linux
	return Plan{
		Platform: Linux,
		Title:    "Building Linux packages",
		Steps: []Step{
			configureStep(opts, c.Defines),
			packageStep("Packaging source", opts, Source, c.SourceGenerators),
			packageStep("Packaging binary tar balls", opts, Binary, c.BinaryGenerators),
		},
	}
}

func windowsPlan(opts PlanOptions) Plan {
	c := opts.Windows
	return Plan{
		Platform: Windows,
		Title:    "Building Windows packages",
		Steps: []Step{
			configureStep(opts, c.Defines),
			packageStep("Packaging source", opts, Source, c.SourceGenerators),
			{
				Label: "Building",
				Run: func(ctx context.Context, t Toolchain) Response {
					return t.Build(ctx, BuildOptions{BuildDir: opts.BuildDir, Config: c.BuildConfig})
				},
			},
			packageStep("Packaging installer", opts, Binary, c.BinaryGenerators),
		},
	}
}
