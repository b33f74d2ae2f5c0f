// Package collector implements the skill collection pass: it walks a scan
// root for marker directories (default ".claude") that directly contain a
// skills folder, and copies any skill directory not already present in the
// destination. Skills are opaque directory trees; the collector only ever
// adds to the destination, never overwrites or deletes.
package collector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/jingkaihe/skillsync/pkg/logger"
	"github.com/pkg/errors"
)

const (
	// DefaultMarkerName is the directory name that signals a project carries skills
	DefaultMarkerName = ".claude"

	skillsDirName = "skills"
)

// DefaultExcludes are directory names never descended into during scanning
var DefaultExcludes = []string{".git", "node_modules"}

// Collector performs a single scan-then-copy pass
type Collector struct {
	scanRoot    string
	destination string
	markerName  string
	excludes    []glob.Glob
	rawExcludes []string
}

// Option configures a Collector
type Option func(*Collector) error

// WithScanRoot sets the root directory to scan for marker directories
func WithScanRoot(root string) Option {
	return func(c *Collector) error {
		c.scanRoot = root
		return nil
	}
}

// WithDestination sets the skills folder that accumulates copies
func WithDestination(dest string) Option {
	return func(c *Collector) error {
		c.destination = dest
		return nil
	}
}

// WithMarkerName overrides the marker directory name
func WithMarkerName(name string) Option {
	return func(c *Collector) error {
		if name == "" {
			return errors.New("marker name cannot be empty")
		}
		c.markerName = name
		return nil
	}
}

// WithExcludes sets glob patterns for directory names to skip during scanning
func WithExcludes(patterns ...string) Option {
	return func(c *Collector) error {
		compiled := make([]glob.Glob, 0, len(patterns))
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern)
			if err != nil {
				return errors.Wrapf(err, "invalid exclude pattern %q", pattern)
			}
			compiled = append(compiled, g)
		}
		c.excludes = compiled
		c.rawExcludes = patterns
		return nil
	}
}

// New creates a Collector, applying defaults for any option not given:
// scan root ".", destination "./.claude/skills", marker ".claude", and
// the DefaultExcludes patterns.
func New(opts ...Option) (*Collector, error) {
	c := &Collector{
		markerName: DefaultMarkerName,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.scanRoot == "" {
		c.scanRoot = "."
	}
	if c.destination == "" {
		c.destination = filepath.Join(".", DefaultMarkerName, skillsDirName)
	}
	if c.excludes == nil {
		if err := WithExcludes(DefaultExcludes...)(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// destLocks serializes concurrent runs against the same destination so that
// two runs cannot race to copy the same new skill name.
var destLocks = struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}{m: make(map[string]*sync.Mutex)}

func lockDestination(canonical string) func() {
	destLocks.mu.Lock()
	l, ok := destLocks.m[canonical]
	if !ok {
		l = &sync.Mutex{}
		destLocks.m[canonical] = l
	}
	destLocks.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Collect runs the scan-then-copy pass and returns a Report. A non-nil error
// is only returned for fatal configuration failures (destination not
// creatable); per-candidate copy failures are aggregated into Report.Err and
// do not abort the run. Cancellation is checked between candidate copies.
func (c *Collector) Collect(ctx context.Context) (*Report, error) {
	if err := os.MkdirAll(c.destination, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create destination %s", c.destination)
	}

	canonDest, err := canonicalPath(c.destination)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve destination %s", c.destination)
	}

	unlock := lockDestination(canonDest)
	defer unlock()

	report := &Report{RunID: uuid.NewString()}
	log := logger.G(ctx).WithField("run_id", report.RunID)
	log.WithFields(map[string]interface{}{
		"scan_root":   c.scanRoot,
		"destination": c.destination,
		"marker":      c.markerName,
	}).Debug("Starting skill collection")

	present, err := presentNames(c.destination)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read destination %s", c.destination)
	}

	sources := c.findSources(ctx, canonDest)
	report.Sources = len(sources)

	for _, source := range sources {
		if ctx.Err() != nil {
			return report, errors.Wrap(ctx.Err(), "collection cancelled")
		}

		entries, err := os.ReadDir(source)
		if err != nil {
			log.WithError(err).WithField("source", source).Debug("Skipping unreadable skills folder")
			continue
		}

		for _, entry := range entries {
			if ctx.Err() != nil {
				return report, errors.Wrap(ctx.Err(), "collection cancelled")
			}

			if !entry.IsDir() {
				continue
			}

			name := entry.Name()
			if present[name] {
				report.record(name, source, ActionSkipped, nil)
				log.WithField("skill", name).Debug("Skill already present, skipping")
				continue
			}

			srcDir := filepath.Join(source, name)
			destDir := filepath.Join(c.destination, name)

			if err := copyDir(srcDir, destDir); err != nil {
				// No rollback: a partially copied candidate stays as-is and
				// the failure is surfaced in the report.
				copyErr := errors.Wrapf(err, "failed to copy skill %s", name)
				report.record(name, source, ActionFailed, copyErr)
				report.Err = multierror.Append(report.Err, copyErr)
				log.WithError(err).WithField("skill", name).Warn("Failed to copy skill")
				continue
			}

			present[name] = true
			report.record(name, source, ActionCopied, nil)
			log.WithFields(map[string]interface{}{
				"skill":  name,
				"source": source,
			}).Debug("Copied skill")
		}
	}

	log.WithFields(map[string]interface{}{
		"sources": report.Sources,
		"copied":  report.Copied,
		"skipped": report.Skipped,
		"failed":  report.Failed,
	}).Info("Skill collection complete")

	return report, nil
}

// presentNames snapshots the immediate subdirectory names of the destination
func presentNames(dest string) (map[string]bool, error) {
	entries, err := os.ReadDir(dest)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			present[entry.Name()] = true
		}
	}
	return present, nil
}

// canonicalPath returns an absolute, symlink-resolved path. If symlink
// resolution fails (broken link, missing path) the absolute path is used.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	return resolved, nil
}

// isWithin reports whether child is parent or located under parent.
// Both paths must already be canonicalized.
func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}
