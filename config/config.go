package config

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/aspkit/asppack/utils"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	AppName = "asppack"

	ConfigProject      = "asppack.yml"
	ConfigGlobal       = "config.yml"
	ConfigEnvVariables = ".env"

	EnvCMake = "ASPPACK_CMAKE"
	EnvCPack = "ASPPACK_CPACK"
)

type Config struct {
	Project      string         `yaml:"project,omitempty"`
	BuildDir     string         `yaml:"build_dir,omitempty"`
	ExpectedDirs []string       `yaml:"expected_dirs,omitempty"`
	VCS          string         `yaml:"vcs,omitempty"`
	Checksums    bool           `yaml:"checksums"`
	Tools        ToolConfig     `yaml:"tools,omitempty"`
	Linux        PlatformConfig `yaml:"linux,omitempty"`
	Windows      PlatformConfig `yaml:"windows,omitempty"`
	Publish      PublishConfig  `yaml:"publish,omitempty"`
}

type ToolConfig struct {
	CMake string `yaml:"cmake,omitempty"`
	CPack string `yaml:"cpack,omitempty"`
}

// PlatformConfig tunes the fixed command sequence of one platform.
// BuildConfig is only used where the sequence has an explicit build step.
type PlatformConfig struct {
	Defines          []string `yaml:"defines,omitempty"`
	SourceGenerators []string `yaml:"source_generators,omitempty"`
	BinaryGenerators []string `yaml:"binary_generators,omitempty"`
	BuildConfig      string   `yaml:"build_config,omitempty"`
}

type PublishConfig struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	Region    string `yaml:"region,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Bucket    string `yaml:"bucket,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
}

func (p PublishConfig) Configured() bool {
	return !utils.IsStringEmpty(p.Endpoint) && !utils.IsStringEmpty(p.Bucket)
}

func Default() Config {
	return Config{
		Project:      "Asp",
		BuildDir:     "build-package",
		ExpectedDirs: []string{"engine", "compiler", "appspec", "info", "util", "standalone"},
		VCS:          "git",
		Checksums:    true,
		Tools: ToolConfig{
			CMake: "cmake",
			CPack: "cpack",
		},
		Linux: PlatformConfig{
			Defines: []string{
				"BUILD_SHARED_LIBS=ON",
				"INSTALL_DEV=ON",
				"CMAKE_INSTALL_PREFIX=/usr",
				"CMAKE_BUILD_TYPE=Release",
			},
			SourceGenerators: []string{"TBZ2", "TGZ"},
			BinaryGenerators: []string{"TBZ2", "TGZ"},
		},
		Windows: PlatformConfig{
			Defines: []string{
				"BUILD_SHARED_LIBS=ON",
				"INSTALL_DEV=ON",
			},
			SourceGenerators: []string{"ZIP"},
			BinaryGenerators: []string{"NSIS"},
			BuildConfig:      "Release",
		},
		Publish: PublishConfig{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}

// GlobalConfigFile is the per-user configuration, e.g.
// ~/.config/asppack/config.yml on Linux.
func GlobalConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigGlobal)
}

// Load layers the global file and the project file over the defaults. A
// missing file is skipped; argConfigFile, when given, must exist.
func Load(root, argConfigFile string) (c Config, err error) {
	c = Default()
	err = overlay(&c, GlobalConfigFile(), false)
	if err != nil {
		return
	}

	configFile := argConfigFile
	required := true
	if utils.IsStringEmpty(argConfigFile) {
		configFile = filepath.Join(root, ConfigProject)
		required = false
	}
	err = overlay(&c, configFile, required)
	if err != nil {
		return
	}
	c.expandEnv()
	return
}

func overlay(c *Config, file string, required bool) error {
	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		if required {
			return fmt.Errorf("configuration file %s not found", file)
		}
		return nil
	}
	if err != nil {
		return err
	}

	yamlFile, err := ioutil.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "read config file %s", file)
	}
	err = yaml.Unmarshal(yamlFile, c)
	if err != nil {
		return errors.Wrapf(err, "unmarshal config file %s", file)
	}
	return nil
}

func (c *Config) expandEnv() {
	c.Tools.CMake = utils.FirstNonEmpty(os.Getenv(EnvCMake), utils.ReadEnvVariableIfHas(c.Tools.CMake), "cmake")
	c.Tools.CPack = utils.FirstNonEmpty(os.Getenv(EnvCPack), utils.ReadEnvVariableIfHas(c.Tools.CPack), "cpack")
	c.Publish.Endpoint = utils.ReadEnvVariableIfHas(c.Publish.Endpoint)
	c.Publish.AccessKey = utils.ReadEnvVariableIfHas(c.Publish.AccessKey)
	c.Publish.SecretKey = utils.ReadEnvVariableIfHas(c.Publish.SecretKey)
	c.Publish.Bucket = utils.ReadEnvVariableIfHas(c.Publish.Bucket)
}

// LoadEnv reads <root>/.env into the process environment. Variables that
// are already set win.
func LoadEnv(root string) error {
	envFile := filepath.Join(root, ConfigEnvVariables)
	if utils.IsNotExists(envFile) {
		return nil
	}
	fi, err := os.Stat(envFile)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return nil
	}
	return errors.Wrapf(godotenv.Load(envFile), "load %s", envFile)
}

func (c Config) Validate() error {
	if utils.IsStringEmpty(c.BuildDir) {
		return fmt.Errorf("build_dir must not be empty")
	}
	if filepath.IsAbs(c.BuildDir) {
		return fmt.Errorf("build_dir %s must be relative to the repository root", c.BuildDir)
	}
	clean := filepath.Clean(c.BuildDir)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("build_dir %s must stay inside the repository root", c.BuildDir)
	}
	if len(c.ExpectedDirs) == 0 {
		return fmt.Errorf("expected_dirs must not be empty")
	}
	return nil
}

func WriteConfig(w io.Writer, c Config) error {
	bytes, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = w.Write(bytes)
	return err
}
