package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jingkaihe/skillsync/pkg/collector"
	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CollectConfig holds configuration for the collect command
type CollectConfig struct {
	Root     string
	Dest     string
	Marker   string
	Excludes []string
}

// NewCollectConfig creates a CollectConfig from viper-backed defaults
func NewCollectConfig() *CollectConfig {
	return &CollectConfig{
		Root:     viper.GetString("scan_root"),
		Dest:     viper.GetString("destination"),
		Marker:   viper.GetString("marker"),
		Excludes: viper.GetStringSlice("exclude"),
	}
}

var collectCmd = &cobra.Command{
	Use:     "collect",
	Aliases: []string{"sync"},
	Short:   "Scan project trees and copy new skills into the destination",
	Long: `Scan the root directory for projects carrying a marker directory with a
skills folder, and copy every skill whose name is not already present in the
destination. Skills already present are skipped, never overwritten.

Examples:
  skillsync collect
  skillsync collect --root ~/dev --dest ~/dev/me/.claude/skills
  skillsync collect --exclude node_modules --exclude "tmp*"`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getCollectConfigFromFlags(cmd)
		runCollect(cmd.Context(), config)
	},
}

func init() {
	collectCmd.Flags().StringP("root", "r", ".", "Root directory to scan for project skills")
	collectCmd.Flags().StringP("dest", "d", "./.claude/skills", "Destination skills folder")
	collectCmd.Flags().String("marker", collector.DefaultMarkerName, "Marker directory name that signals a skills collection")
	collectCmd.Flags().StringSliceP("exclude", "e", collector.DefaultExcludes, "Directory name patterns to skip while scanning")

	rootCmd.AddCommand(collectCmd)
}

// getCollectConfigFromFlags extracts collect configuration, with explicitly
// set flags taking precedence over config file and environment values
func getCollectConfigFromFlags(cmd *cobra.Command) *CollectConfig {
	config := NewCollectConfig()

	if cmd.Flags().Changed("root") {
		config.Root, _ = cmd.Flags().GetString("root")
	}
	if cmd.Flags().Changed("dest") {
		config.Dest, _ = cmd.Flags().GetString("dest")
	}
	if cmd.Flags().Changed("marker") {
		config.Marker, _ = cmd.Flags().GetString("marker")
	}
	if cmd.Flags().Changed("exclude") {
		config.Excludes, _ = cmd.Flags().GetStringSlice("exclude")
	}

	return config
}

func runCollect(ctx context.Context, config *CollectConfig) {
	c, err := collector.New(
		collector.WithScanRoot(config.Root),
		collector.WithDestination(config.Dest),
		collector.WithMarkerName(config.Marker),
		collector.WithExcludes(config.Excludes...),
	)
	if err != nil {
		presenter.Error(err, "Invalid configuration")
		os.Exit(1)
	}

	report, err := c.Collect(ctx)
	if err != nil {
		presenter.Error(err, "Skill collection failed")
		os.Exit(1)
	}

	printReport(report)
}

// printReport renders the per-action log and the end-of-run summary.
// Copy failures are surfaced here but do not affect the exit status.
func printReport(report *collector.Report) {
	for _, action := range report.Actions {
		switch action.Result {
		case collector.ActionCopied:
			presenter.Success(fmt.Sprintf("Copied skill '%s' from %s", action.Skill, action.Source))
		case collector.ActionSkipped:
			presenter.Info(fmt.Sprintf("Skill '%s' already present, skipped", action.Skill))
		case collector.ActionFailed:
			presenter.Error(action.Err, fmt.Sprintf("Failed to copy skill '%s'", action.Skill))
		}
	}

	presenter.Separator()
	presenter.Info(report.Summary())

	if report.Failed > 0 {
		presenter.Warning(fmt.Sprintf("%d skill(s) could not be copied; see errors above", report.Failed))
	}
}
