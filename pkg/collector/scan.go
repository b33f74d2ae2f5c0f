package collector

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jingkaihe/skillsync/pkg/logger"
)

// findSources walks the scan root and returns the skills folders of every
// matched marker directory, in traversal order. Unreadable subtrees are
// skipped, never fatal. A matched marker is not descended into further.
func (c *Collector) findSources(ctx context.Context, canonDest string) []string {
	log := logger.G(ctx)

	destProject := c.destProject(canonDest)

	var sources []string
	_ = filepath.WalkDir(c.scanRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).WithField("path", path).Debug("Skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if path != c.scanRoot && c.excluded(d.Name()) {
			return filepath.SkipDir
		}

		if d.Name() != c.markerName {
			return nil
		}

		skillsDir := filepath.Join(path, skillsDirName)
		info, statErr := os.Stat(skillsDir)
		if statErr != nil || !info.IsDir() {
			return filepath.SkipDir
		}

		if c.isSelf(path, canonDest, destProject) {
			log.WithField("marker", path).Debug("Skipping destination's own marker directory")
			return filepath.SkipDir
		}

		sources = append(sources, skillsDir)
		return filepath.SkipDir
	})

	return sources
}

func (c *Collector) excluded(name string) bool {
	for _, g := range c.excludes {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// destProject derives the project directory that owns the destination, when
// the destination follows the <project>/<marker>/skills layout. It returns
// "" when the destination does not sit inside a marker directory.
func (c *Collector) destProject(canonDest string) string {
	parent := filepath.Dir(canonDest)
	if filepath.Base(parent) == c.markerName {
		return filepath.Dir(parent)
	}
	return ""
}

// isSelf reports whether a matched marker belongs to the destination's own
// project tree, compared by canonicalized path containment rather than by
// name, so the collector never re-imports its own output.
func (c *Collector) isSelf(markerPath, canonDest, destProject string) bool {
	canonMarker, err := canonicalPath(markerPath)
	if err != nil {
		return false
	}

	if destProject != "" && isWithin(destProject, canonMarker) {
		return true
	}

	return isWithin(canonMarker, canonDest) || isWithin(canonDest, canonMarker)
}
