package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jingkaihe/skillsync/pkg/collector"
	"github.com/jingkaihe/skillsync/pkg/logger"
	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of ~/.skillsync/config.yaml
type FileConfig struct {
	ScanRoot    string   `yaml:"scan_root"`
	Destination string   `yaml:"destination"`
	Marker      string   `yaml:"marker"`
	Exclude     []string `yaml:"exclude"`
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
}

// DefaultFileConfig returns the config written by skillsync init
func DefaultFileConfig() FileConfig {
	return FileConfig{
		ScanRoot:    ".",
		Destination: filepath.Join(".", collector.DefaultMarkerName, "skills"),
		Marker:      collector.DefaultMarkerName,
		Exclude:     collector.DefaultExcludes,
		LogLevel:    "info",
		LogFormat:   "fmt",
	}
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up skillsync configuration",
	Long:  `Set up skillsync configuration with sensible defaults.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		override, _ := cmd.Flags().GetBool("override")

		presenter.Section("Skillsync Configuration Setup")

		homeDir, err := os.UserHomeDir()
		if err != nil {
			presenter.Error(err, "Failed to determine home directory")
			os.Exit(1)
		}

		configDir := filepath.Join(homeDir, ".skillsync")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			presenter.Error(err, "Failed to create config directory")
			logger.G(ctx).WithError(err).WithField("config_dir", configDir).Error("Config directory creation failed")
			os.Exit(1)
		}

		configFile := filepath.Join(configDir, "config.yaml")

		if !override {
			if _, err := os.Stat(configFile); err == nil {
				presenter.Warning(fmt.Sprintf("Configuration file already exists at %s", configFile))
				presenter.Info("To overwrite, use the --override flag or remove the file and run 'skillsync init' again")
				return
			}
		}

		content, err := yaml.Marshal(DefaultFileConfig())
		if err != nil {
			presenter.Error(err, "Failed to render default configuration")
			os.Exit(1)
		}

		if err := os.WriteFile(configFile, content, 0o644); err != nil {
			presenter.Error(err, "Failed to write config file")
			logger.G(ctx).WithError(err).WithField("config_file", configFile).Error("Config file write failed")
			os.Exit(1)
		}

		if override {
			presenter.Success(fmt.Sprintf("Configuration overwritten at %s", configFile))
		} else {
			presenter.Success(fmt.Sprintf("Configuration saved to %s", configFile))
		}
		logger.G(ctx).WithField("config_file", configFile).Info("Configuration file created")

		presenter.Separator()
		presenter.Section("Getting Started")
		presenter.Info("  skillsync collect                     # Collect skills into ./.claude/skills")
		presenter.Info("  skillsync collect -r ~/dev            # Scan a different root")
		presenter.Info("  skillsync list                        # Show collected skills")
		presenter.Info("  skillsync watch                       # Re-collect on changes")
	},
}

func init() {
	initCmd.Flags().Bool("override", false, "Overwrite an existing configuration file")

	rootCmd.AddCommand(initCmd)
}
