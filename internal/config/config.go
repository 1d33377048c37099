// Package config loads contribfang settings from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
)

// Defaults for runtime settings.
const (
	DefaultRemote           = "origin"
	DefaultDays             = 365
	DefaultOutput           = "."
	DefaultMailmap          = ".mailmap"
	DefaultSkipMergeCommits = true
)

// ErrNonPositiveDays is returned when the recency window is zero or negative.
var ErrNonPositiveDays = errors.New("days must be positive")

// Config holds all runtime settings for a run.
type Config struct {
	// Remote is the remote whose branches are examined.
	Remote string `mapstructure:"remote"`
	// Branches is an optional comma-separated allow-list of branch short names.
	Branches string `mapstructure:"branches"`
	// Days is the trailing recency window size.
	Days int `mapstructure:"days"`
	// Output is the directory artifacts are written to.
	Output string `mapstructure:"output"`
	// Mailmap is the alias file path relative to the repository directory.
	Mailmap string `mapstructure:"mailmap"`
	// SkipMergeCommits excludes merge commits from all statistics.
	SkipMergeCommits bool `mapstructure:"skip_merge_commits"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Days <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveDays, c.Days)
	}

	return nil
}
