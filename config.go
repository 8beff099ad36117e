// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package cmdusage

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A Duration wraps time.Duration so timeouts can be written as strings like
// "10s" in configuration files.
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return errors.Wrap(err, "invalid duration")
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config holds all pipeline settings. The zero value is not usable, start
// from DefaultConfig or LoadConfig.
type Config struct {
	// HistoryPatterns are glob patterns for shell history files.
	HistoryPatterns []string `yaml:"history_patterns"`
	// SystemLogPaths are plain paths of system log files.
	SystemLogPaths []string `yaml:"system_log_paths"`
	// RootPrefix resolves all file paths under a mounted image instead of
	// the live system. Empty means the live system.
	RootPrefix string `yaml:"root_prefix"`
	// ProcessTimeout limits the process listing invocation.
	ProcessTimeout Duration `yaml:"process_list_timeout"`
	// AuditTimeout limits the audit search invocation.
	AuditTimeout Duration `yaml:"audit_timeout"`
}

// DefaultConfig returns the candidate paths and timeouts used when nothing
// else is configured: the current user's bash and zsh history, the history
// of all home directories and the Debian style system logs.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/root"
	}
	return Config{
		HistoryPatterns: []string{
			filepath.Join(home, ".bash_history"),
			filepath.Join(home, ".zsh_history"),
			"/home/*/.bash_history",
			"/home/*/.zsh_history",
		},
		SystemLogPaths: []string{"/var/log/syslog", "/var/log/auth.log"},
		ProcessTimeout: Duration(10 * time.Second),
		AuditTimeout:   Duration(10 * time.Second),
	}
}

// LoadConfig reads a yaml configuration file and fills all unset fields
// from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	var config Config
	b, err := ioutil.ReadFile(path) // nolint:gosec
	if err != nil {
		return config, errors.Wrap(err, "could not read config")
	}
	if err := yaml.Unmarshal(b, &config); err != nil {
		return config, errors.Wrap(err, "could not parse config")
	}
	if err := mergo.Merge(&config, DefaultConfig()); err != nil {
		return config, err
	}
	return config, nil
}
