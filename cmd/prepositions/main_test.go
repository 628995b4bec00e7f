package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/host"
	"github.com/plus3/prepositions/internal/config"
	"github.com/plus3/prepositions/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideSettings(t *testing.T) {
	opts, err := parseFlags([]string{"-sketch", "toward", "-scale", "3", "-overlay", "-tap", "10,20", "-tap", "30,40"}, &bytes.Buffer{})
	require.NoError(t, err)

	settings := config.Defaults()
	settings.Variant = "zones"
	settings.LogLevel = "warn"
	opts.apply(&settings)

	assert.Equal(t, "toward", settings.Sketch)
	assert.Empty(t, settings.Variant, "a new sketch drops the configured variant")
	assert.Equal(t, 3.0, settings.Scale)
	assert.True(t, settings.ShowOverlay)
	assert.Equal(t, "warn", settings.LogLevel, "unset flags keep settings")
	assert.Equal(t, host.TapList{geom.V(10, 20), geom.V(30, 40)}, opts.taps)
}

func TestFlagValuesAreRangeChecked(t *testing.T) {
	opts, err := parseFlags([]string{"-config", writeConfig(t, `{"scale": 3}`), "-scale", "100", "-log-level", "loud"}, &bytes.Buffer{})
	require.NoError(t, err)

	var logs bytes.Buffer
	settings, err := loadSettings(opts, logger.New(&logs, logger.LevelDebug, ""))
	require.NoError(t, err)

	assert.Equal(t, 2.0, settings.Scale)
	assert.Equal(t, "info", settings.LogLevel)
	assert.Contains(t, logs.String(), "[config] invalid scale value 100.00")
}

func TestParseFlagsRejectsArguments(t *testing.T) {
	_, err := parseFlags([]string{"between"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unexpected arguments")

	_, err = parseFlags([]string{"-tap", "nowhere"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunList(t *testing.T) {
	presetDir, err := filepath.Abs(filepath.Join("..", "..", "presets"))
	require.NoError(t, err)
	path := writeConfig(t, `{"sketch": "between"}`)

	var stdout, stderr bytes.Buffer
	err = run(context.Background(), []string{"-config", path, "-preset-dir", presetDir, "-list"}, &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "sketches")
	assert.Contains(t, out, "BETWEEN")
	assert.Contains(t, out, "UNTIL")
	assert.Contains(t, out, "[preset]")
	assert.Contains(t, stderr.String(), "loaded 3 presets")
}

func TestRunHeadless(t *testing.T) {
	path := writeConfig(t, `{"sketch": "past", "variant": "oneway", "log_level": "info"}`)

	var stdout, stderr bytes.Buffer
	args := []string{"-config", path, "-headless", "-hz", "1000", "-ticks", "90", "-tap", "300,250"}
	require.NoError(t, run(context.Background(), args, &stdout, &stderr))

	logs := stderr.String()
	assert.Contains(t, logs, "started past/oneway")
	assert.Contains(t, logs, "[headless] tick 1: Circle is approaching the reference point")
	assert.Contains(t, logs, "Circle moved PAST the reference point *")
	assert.Contains(t, logs, "completed: headless past/oneway")
}

func TestRunUnknownSketch(t *testing.T) {
	path := writeConfig(t, `{}`)
	err := run(context.Background(), []string{"-config", path, "-sketch", "upon", "-headless"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, `unknown sketch: "upon"`)
}
