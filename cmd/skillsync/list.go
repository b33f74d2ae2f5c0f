package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/skills"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ListConfig holds configuration for the list command
type ListConfig struct {
	Dest string
}

// NewListConfig creates a ListConfig from viper-backed defaults
func NewListConfig() *ListConfig {
	return &ListConfig{
		Dest: viper.GetString("destination"),
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills in the destination folder",
	Long: `List the skills collected in the destination folder. When a skill carries a
SKILL.md file with YAML frontmatter, its name and description are read from
the frontmatter; otherwise the directory name is shown.`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getListConfigFromFlags(cmd)
		listSkills(config)
	},
}

func init() {
	listCmd.Flags().StringP("dest", "d", "./.claude/skills", "Destination skills folder")

	rootCmd.AddCommand(listCmd)
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()

	if cmd.Flags().Changed("dest") {
		config.Dest, _ = cmd.Flags().GetString("dest")
	}

	return config
}

func listSkills(config *ListConfig) {
	collected, err := skills.List(config.Dest)
	if err != nil {
		presenter.Error(err, "Failed to list skills")
		os.Exit(1)
	}

	if len(collected) == 0 {
		presenter.Info("No skills collected")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t---------\t-----------")

	for _, skill := range collected {
		description := skill.Description
		if len(description) > 60 {
			description = description[:57] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Directory, description)
	}
	tw.Flush()
}
