// Package skills reads skill directories and their optional SKILL.md
// metadata. A skill is a directory of instructional content; when it carries
// a SKILL.md file with YAML frontmatter, the name and description from the
// frontmatter are surfaced, otherwise the directory name is used as-is.
package skills

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

const skillFileName = "SKILL.md"

// Skill represents a skill directory with its metadata
type Skill struct {
	Name        string // From frontmatter, or the directory name
	Description string // From frontmatter, empty if no SKILL.md
	Directory   string // Full path to the skill directory
}

// Metadata represents the YAML frontmatter in SKILL.md files
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// List enumerates the immediate subdirectories of a skills folder and loads
// metadata for each, sorted by name. A missing folder yields an empty list.
func List(dir string) ([]Skill, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read skills directory %s", dir)
	}

	var result []Skill
	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())

		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		skill := Skill{
			Name:      entry.Name(),
			Directory: entryPath,
		}

		if md, err := loadMetadata(filepath.Join(entryPath, skillFileName)); err == nil {
			if md.Name != "" {
				skill.Name = md.Name
			}
			skill.Description = md.Description
		}

		result = append(result, skill)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

// loadMetadata parses the YAML frontmatter of a SKILL.md file
func loadMetadata(path string) (*Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)

	return &Metadata{
		Name:        name,
		Description: description,
	}, nil
}
