package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/jingkaihe/skillsync/pkg/logger"
	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// WatchConfig holds configuration for the watch command
type WatchConfig struct {
	Collect      *CollectConfig
	DebounceTime int
}

// NewWatchConfig creates a new WatchConfig with default values
func NewWatchConfig() *WatchConfig {
	return &WatchConfig{
		Collect:      NewCollectConfig(),
		DebounceTime: 500,
	}
}

// Validate validates the WatchConfig and returns an error if invalid
func (c *WatchConfig) Validate() error {
	if c.DebounceTime < 0 {
		return errors.Errorf("debounce time cannot be negative: %d", c.DebounceTime)
	}
	return nil
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the scan root and collect new skills as they appear",
	Long: `Continuously monitors the scan root for filesystem changes and re-runs the
collection pass whenever project skills change. The destination subtree is
not watched, so the tool's own copies never re-trigger a run.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		config := getWatchConfigFromFlags(cmd)
		if err := config.Validate(); err != nil {
			presenter.Error(err, "Invalid configuration")
			os.Exit(1)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			presenter.Warning("Cancellation requested, shutting down...")
			cancel()
		}()

		runWatchMode(ctx, config)
	},
}

func init() {
	defaults := NewWatchConfig()
	watchCmd.Flags().StringP("root", "r", ".", "Root directory to scan for project skills")
	watchCmd.Flags().StringP("dest", "d", "./.claude/skills", "Destination skills folder")
	watchCmd.Flags().String("marker", defaults.Collect.Marker, "Marker directory name that signals a skills collection")
	watchCmd.Flags().StringSliceP("exclude", "e", defaults.Collect.Excludes, "Directory name patterns to skip while scanning")
	watchCmd.Flags().Int("debounce", defaults.DebounceTime, "Debounce time in milliseconds for file change events")

	rootCmd.AddCommand(watchCmd)
}

// getWatchConfigFromFlags extracts watch configuration from command flags
func getWatchConfigFromFlags(cmd *cobra.Command) *WatchConfig {
	config := NewWatchConfig()
	config.Collect = getCollectConfigFromFlags(cmd)

	if debounceTime, err := cmd.Flags().GetInt("debounce"); err == nil {
		config.DebounceTime = debounceTime
	}

	return config
}

func runWatchMode(ctx context.Context, config *WatchConfig) {
	// Initial pass before watching
	runCollect(ctx, config.Collect)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		presenter.Error(err, "Failed to create file watcher")
		logger.G(ctx).WithError(err).Fatal("Failed to create file watcher")
	}
	defer watcher.Close()

	excludes := make([]glob.Glob, 0, len(config.Collect.Excludes))
	for _, pattern := range config.Collect.Excludes {
		if g, err := glob.Compile(pattern); err == nil {
			excludes = append(excludes, g)
		}
	}

	destAbs, err := filepath.Abs(config.Collect.Dest)
	if err != nil {
		destAbs = config.Collect.Dest
	}

	addWatchTree(ctx, watcher, config.Collect.Root, destAbs, excludes)

	trigger := make(chan struct{}, 1)

	// Debounced collection runs
	go func() {
		debounce := time.Duration(config.DebounceTime) * time.Millisecond
		var timer *time.Timer
		var timerCh <-chan time.Time

		for {
			select {
			case <-trigger:
				if timer == nil {
					timer = time.NewTimer(debounce)
					timerCh = timer.C
				} else {
					timer.Reset(debounce)
				}
			case <-timerCh:
				timer = nil
				timerCh = nil
				presenter.Info("Change detected, collecting skills...")
				runCollect(ctx, config.Collect)
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if skipWatchEvent(event.Name, destAbs, excludes) {
					continue
				}

				// Newly created directories need to be watched too
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						addWatchTree(ctx, watcher, event.Name, destAbs, excludes)
					}
				}

				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
					logger.G(ctx).WithFields(map[string]interface{}{
						"file":      event.Name,
						"operation": event.Op.String(),
					}).Debug("File change detected")
					select {
					case trigger <- struct{}{}:
					default:
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				presenter.Error(err, "File watcher error")
				logger.G(ctx).WithError(err).Error("Error watching files")
			case <-ctx.Done():
				return
			}
		}
	}()

	presenter.Info(fmt.Sprintf("Watching %s for skill changes (Ctrl+C to stop)", config.Collect.Root))
	<-ctx.Done()
}

// addWatchTree registers root and all its subdirectories with the watcher,
// skipping excluded directory names and the destination subtree
func addWatchTree(ctx context.Context, watcher *fsnotify.Watcher, root, destAbs string, excludes []glob.Glob) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		if skipWatchEvent(path, destAbs, excludes) && path != root {
			return filepath.SkipDir
		}

		if err := watcher.Add(path); err != nil {
			logger.G(ctx).WithError(err).WithField("directory", path).Debug("Failed to watch directory")
		}
		return nil
	})
}

// skipWatchEvent reports whether a path is inside the destination subtree or
// matches an excluded directory name
func skipWatchEvent(path, destAbs string, excludes []glob.Glob) bool {
	if abs, err := filepath.Abs(path); err == nil {
		if rel, err := filepath.Rel(destAbs, abs); err == nil {
			if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))) {
				return true
			}
		}
	}

	base := filepath.Base(path)
	for _, g := range excludes {
		if g.Match(base) {
			return true
		}
	}
	return false
}
