// Package commands implements CLI command handlers for contribfang.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Sumatoshi-tech/contribfang/internal/config"
	"github.com/Sumatoshi-tech/contribfang/internal/contrib"
	"github.com/Sumatoshi-tech/contribfang/internal/export"
	"github.com/Sumatoshi-tech/contribfang/pkg/gitlib"
	"github.com/Sumatoshi-tech/contribfang/pkg/mailmap"
)

// Artifact names, written into the output directory.
const (
	commitsCSVName    = "commits.csv"
	committersCSVName = "committers.csv"
	domainsCSVName    = "domains.csv"

	committerCommitsChart   = "commits-per-committer.html"
	committerAdditionsChart = "additions-per-committer.html"
	domainCommitsChart      = "commits-per-domain.html"
	domainAdditionsChart    = "additions-per-domain.html"
)

// outputDirPerm is the permission for the created output directory.
const outputDirPerm = 0o750

// ErrRepoPathMissing is returned when the repository directory does not exist.
var ErrRepoPathMissing = errors.New("repo directory does not exist")

// ErrRepoPathNotDir is returned when the repository path is not a directory.
var ErrRepoPathNotDir = errors.New("repo path is not a directory")

// RunCommand holds the flag state for the run command.
type RunCommand struct {
	repoPath   string
	remoteName string
	branches   string
	output     string
	configPath string
	days       int
	skipMerges bool
	debug      bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd, _ := newRunCommand()

	return cmd
}

// newRunCommand also exposes the flag-backed state for tests.
func newRunCommand() (*cobra.Command, *RunCommand) {
	rc := &RunCommand{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute contribution statistics for a repository",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rc.run(cmd.Flags())
		},
	}

	cmd.Flags().StringVar(&rc.repoPath, "repo", "", "directory of the git repository")
	cmd.Flags().StringVar(&rc.remoteName, "remote", config.DefaultRemote, "which remote to use")
	cmd.Flags().StringVar(&rc.branches, "branches", "", "comma-separated branch allow-list (default: all branches of the remote)")
	cmd.Flags().IntVar(&rc.days, "days", config.DefaultDays, "number of days to examine")
	cmd.Flags().BoolVar(&rc.skipMerges, "skip-merge-commits", config.DefaultSkipMergeCommits,
		"skip merge commits in the statistics (disable with --skip-merge-commits=false)")
	cmd.Flags().StringVar(&rc.output, "output", config.DefaultOutput, "directory to write artifacts to")
	cmd.Flags().StringVar(&rc.configPath, "config", "", "explicit config file path")
	cmd.Flags().BoolVar(&rc.debug, "debug", false, "enable extra output for debugging")

	_ = cmd.MarkFlagRequired("repo")

	return cmd, rc
}

func (rc *RunCommand) run(flags *pflag.FlagSet) error {
	validateErr := validateRepoPath(rc.repoPath)
	if validateErr != nil {
		return validateErr
	}

	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return err
	}

	rc.applyFlagOverrides(cfg, flags)

	validateErr = cfg.Validate()
	if validateErr != nil {
		return validateErr
	}

	logger := newLogger(rc.debug)

	return rc.execute(cfg, logger)
}

// applyFlagOverrides lets explicitly set flags win over config file and
// environment values.
func (rc *RunCommand) applyFlagOverrides(cfg *config.Config, flags *pflag.FlagSet) {
	if flags.Changed("remote") {
		cfg.Remote = rc.remoteName
	}

	if flags.Changed("branches") {
		cfg.Branches = rc.branches
	}

	if flags.Changed("days") {
		cfg.Days = rc.days
	}

	if flags.Changed("skip-merge-commits") {
		cfg.SkipMergeCommits = rc.skipMerges
	}

	if flags.Changed("output") {
		cfg.Output = rc.output
	}
}

func (rc *RunCommand) execute(cfg *config.Config, logger *slog.Logger) error {
	repo, err := gitlib.OpenRepository(rc.repoPath)
	if err != nil {
		return err
	}
	defer repo.Free()

	aliases, err := mailmap.Load(filepath.Join(rc.repoPath, cfg.Mailmap))
	if err != nil {
		return err
	}

	logger.Debug("loaded mailmap", "identities", len(aliases))

	logger.Info("finding desired remote", "remote", cfg.Remote)

	remote, err := repo.LookupRemote(cfg.Remote)
	if err != nil {
		return err
	}
	defer remote.Free()

	branches, err := contrib.SelectBranches(repo, remote, cfg.Branches, logger)
	if err != nil {
		return err
	}

	set, err := walkBranches(repo, remote, branches, cfg, logger)
	if err != nil {
		return err
	}

	agg := contrib.Aggregate(set, aliases)

	for _, warning := range agg.SanityCheck(len(set)) {
		color.Yellow("ODDITY: %s", warning)
	}

	writeErr := writeArtifacts(cfg.Output, set, agg, remote.URL(), logger)
	if writeErr != nil {
		return writeErr
	}

	export.WriteSummary(os.Stdout, agg, len(set))
	color.Green("Done!")

	return nil
}

// walkBranches examines the default branch first so that it claims all
// commits on shared ancestry, then the remaining branches.
func walkBranches(
	repo *gitlib.Repository,
	remote *gitlib.Remote,
	branches []gitlib.RemoteBranch,
	cfg *config.Config,
	logger *slog.Logger,
) (contrib.CommitSet, error) {
	cutoff := time.Now().AddDate(0, 0, -cfg.Days)
	set := contrib.NewCommitSet()

	defaultBranch, hasDefault := contrib.DefaultBranch(repo, remote, branches)
	if hasDefault {
		var err error

		set, err = contrib.ExamineBranch(repo, defaultBranch, cutoff, set, cfg.SkipMergeCommits, logger)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("no default branch found", "remote", remote.Name())
	}

	for _, branch := range branches {
		if hasDefault && branch.FullName == defaultBranch.FullName {
			continue
		}

		var err error

		set, err = contrib.ExamineBranch(repo, branch, cutoff, set, cfg.SkipMergeCommits, logger)
		if err != nil {
			return nil, err
		}
	}

	return set, nil
}

func writeArtifacts(
	outputDir string,
	set contrib.CommitSet,
	agg *contrib.Aggregates,
	remoteURL string,
	logger *slog.Logger,
) error {
	mkErr := os.MkdirAll(outputDir, outputDirPerm)
	if mkErr != nil {
		return fmt.Errorf("create output dir: %w", mkErr)
	}

	csvs := []struct {
		name  string
		table export.Table
	}{
		{commitsCSVName, export.CommitsTable(set, remoteURL)},
		{committersCSVName, export.CommittersTable(agg)},
		{domainsCSVName, export.DomainsTable(agg)},
	}

	for _, artifact := range csvs {
		logger.Info("writing table", "file", artifact.name)

		err := artifact.table.WriteCSV(filepath.Join(outputDir, artifact.name))
		if err != nil {
			return err
		}
	}

	charts := []struct {
		name   string
		title  string
		slices []export.PieSlice
	}{
		{committerCommitsChart, "Number of commits per committer", export.CommitterCommitSlices(agg)},
		{committerAdditionsChart, "Number of additions per committer", export.CommitterAdditionSlices(agg)},
		{domainCommitsChart, "Number of commits per domain", export.DomainCommitSlices(agg)},
		{domainAdditionsChart, "Number of additions per domain", export.DomainAdditionSlices(agg)},
	}

	for _, chart := range charts {
		logger.Info("plotting chart", "title", chart.title, "file", chart.name)

		err := export.WritePie(filepath.Join(outputDir, chart.name), chart.title, chart.slices)
		if err != nil {
			return err
		}
	}

	return nil
}

func validateRepoPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w (%s)", ErrRepoPathMissing, path)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w (%s)", ErrRepoPathNotDir, path)
	}

	return nil
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
