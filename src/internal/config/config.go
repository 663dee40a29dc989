// Package config merges flags, HANSER_* environment variables and an
// optional YAML file into the settings of one run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"elibrary/src/internal/pipeline"
	"elibrary/src/internal/reference"
)

// EnvPrefix is prepended to every environment key, e.g. HANSER_OUTPUT.
const EnvPrefix = "HANSER"

// Setting keys. Flags are bound to these names.
const (
	KeyOutput     = "output"
	KeyForce      = "force"
	KeyDedupe     = "dedupe"
	KeyLookupYear = "lookup_year"
	KeyReport     = "report"
	KeyVerbose    = "verbose"
	KeyBaseURL    = "base_url"
	KeyTimeout    = "timeout"
)

// flagFor maps setting keys to CLI flag names.
var flagFor = map[string]string{
	KeyOutput:     "out",
	KeyForce:      "force",
	KeyDedupe:     "dedupe",
	KeyLookupYear: "lookup-year",
	KeyReport:     "report",
	KeyVerbose:    "verbose",
	KeyBaseURL:    "base-url",
	KeyTimeout:    "timeout",
}

// Settings is the resolved configuration.
type Settings struct {
	OutputDir  string
	Force      bool
	Dedupe     reference.Policy
	LookupYear bool
	ReportPath string
	Verbose    bool
	BaseURL    string
	Timeout    time.Duration
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyOutput, ".")
	v.SetDefault(KeyDedupe, string(reference.PolicyExact))
	v.SetDefault(KeyBaseURL, reference.DefaultBaseURL)
	v.SetDefault(KeyTimeout, 60*time.Second)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every known flag present in fs.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagFor {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// ReadFile loads file, or $HOME/.hanser.yaml when file is empty. Only an
// explicitly named file is required to exist. It returns the file used.
func ReadFile(v *viper.Viper, file string) (string, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".hanser")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load resolves the settings held by v.
func Load(v *viper.Viper) (Settings, error) {
	policy, err := reference.ParsePolicy(v.GetString(KeyDedupe))
	if err != nil {
		return Settings{}, err
	}
	out, err := ExpandHome(v.GetString(KeyOutput))
	if err != nil {
		return Settings{}, err
	}
	report, err := ExpandHome(v.GetString(KeyReport))
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		OutputDir:  out,
		Force:      v.GetBool(KeyForce),
		Dedupe:     policy,
		LookupYear: v.GetBool(KeyLookupYear),
		ReportPath: report,
		Verbose:    v.GetBool(KeyVerbose),
		BaseURL:    v.GetString(KeyBaseURL),
		Timeout:    v.GetDuration(KeyTimeout),
	}, nil
}

// RunConfig builds the pipeline configuration for inputs.
func (s Settings) RunConfig(inputs []reference.Input) pipeline.RunConfig {
	return pipeline.RunConfig{
		OutputDir:  s.OutputDir,
		Force:      s.Force,
		Inputs:     inputs,
		Policy:     s.Dedupe,
		BaseURL:    s.BaseURL,
		LookupYear: s.LookupYear,
		ReportPath: s.ReportPath,
		Timeout:    s.Timeout,
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", p, err)
	}
	return filepath.Join(home, p[1:]), nil
}
