package presenter

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	presenter := New()
	assert.NotNil(t, presenter)
	assert.Equal(t, os.Stdout, presenter.output)
	assert.Equal(t, os.Stderr, presenter.errorOutput)
	assert.False(t, presenter.quiet)
}

func TestNewWithOptions(t *testing.T) {
	var output, errorOutput bytes.Buffer
	presenter := NewWithOptions(&output, &errorOutput, ColorNever)

	assert.Equal(t, &output, presenter.output)
	assert.Equal(t, &errorOutput, presenter.errorOutput)
	assert.Equal(t, ColorNever, presenter.colorMode)
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name           string
		noColor        string
		skillsyncColor string
		expected       ColorMode
	}{
		{"NO_COLOR set", "1", "", ColorNever},
		{"SKILLSYNC_COLOR always", "", "always", ColorAlways},
		{"SKILLSYNC_COLOR force", "", "force", ColorAlways},
		{"SKILLSYNC_COLOR never", "", "never", ColorNever},
		{"SKILLSYNC_COLOR off", "", "off", ColorNever},
		{"SKILLSYNC_COLOR auto", "", "auto", ColorAuto},
		{"default", "", "", ColorAuto},
		{"invalid skillsync color", "", "invalid", ColorAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("NO_COLOR")
			os.Unsetenv("SKILLSYNC_COLOR")

			if tt.noColor != "" {
				os.Setenv("NO_COLOR", tt.noColor)
			}
			if tt.skillsyncColor != "" {
				os.Setenv("SKILLSYNC_COLOR", tt.skillsyncColor)
			}

			result := detectColorMode()
			assert.Equal(t, tt.expected, result)

			os.Unsetenv("NO_COLOR")
			os.Unsetenv("SKILLSYNC_COLOR")
		})
	}
}

func TestError(t *testing.T) {
	var errorOutput bytes.Buffer
	presenter := NewWithOptions(nil, &errorOutput, ColorNever)

	err := errors.New("test error")
	presenter.Error(err, "test context")
	assert.Contains(t, errorOutput.String(), "[ERROR] test context: test error")

	errorOutput.Reset()
	presenter.Error(err, "")
	assert.Contains(t, errorOutput.String(), "[ERROR] test error")

	errorOutput.Reset()
	presenter.Error(nil, "ignored")
	assert.Empty(t, errorOutput.String())
}

func TestSuccessWarningInfo(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Success("copied skill")
	assert.Contains(t, output.String(), "✓ copied skill")

	output.Reset()
	presenter.Warning("skill already exists")
	assert.Contains(t, output.String(), "⚠ skill already exists")

	output.Reset()
	presenter.Info("scanning")
	assert.Equal(t, "scanning\n", output.String())
}

func TestSection(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Section("Sync Summary")

	lines := strings.Split(strings.TrimRight(output.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "Sync Summary", lines[0])
	assert.Equal(t, strings.Repeat("-", len("Sync Summary")), lines[1])
}

func TestQuietMode(t *testing.T) {
	var output, errorOutput bytes.Buffer
	presenter := NewWithOptions(&output, &errorOutput, ColorNever)

	presenter.SetQuiet(true)
	assert.True(t, presenter.IsQuiet())

	presenter.Success("hidden")
	presenter.Warning("hidden")
	presenter.Info("hidden")
	presenter.Section("hidden")
	presenter.Separator()
	assert.Empty(t, output.String())

	// Errors are always shown
	presenter.Error(errors.New("boom"), "")
	assert.Contains(t, errorOutput.String(), "boom")
}
