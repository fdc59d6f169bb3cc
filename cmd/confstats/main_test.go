package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "confstats/internal/errors"
	"confstats/internal/infrastructure"
	"confstats/internal/shared/testutil"
	"confstats/pkg/contracts"
)

func writeArchive(t *testing.T) string {
	t.Helper()
	return testutil.NewExport().
		Review(1, "Alice", 3, 4).
		Review(1, "Bob", -2, 2).
		Topics(1, "Algorithms").
		Write(t)
}

func runCommand(t *testing.T, args ...string) (int, string) {
	t.Helper()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	var out bytes.Buffer
	code := run(context.Background(), args, &out)
	return code, out.String()
}

func TestRun_NoArguments(t *testing.T) {
	code, out := runCommand(t)
	assert.Equal(t, apperrors.ExitUsage, code)
	assert.Contains(t, out, "Usage: confstats [flags] <conference.zip>")
}

func TestRun_TooManyArguments(t *testing.T) {
	code, out := runCommand(t, "a.zip", "b.zip")
	assert.Equal(t, apperrors.ExitUsage, code)
	assert.Contains(t, out, "Usage:")
}

func TestRun_Help(t *testing.T) {
	code, out := runCommand(t, "-h")
	assert.Equal(t, apperrors.ExitOK, code)
	assert.Contains(t, out, "-csv-dir")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _ := runCommand(t, "-bogus", "a.zip")
	assert.Equal(t, apperrors.ExitUsage, code)
}

func TestRun_MissingArchive(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.zip")
	out := filepath.Join(dir, "scores.html")

	code, stdout := runCommand(t, "-out", out, missing)
	assert.Equal(t, apperrors.ExitUsage, code)
	assert.Contains(t, stdout, "file "+missing+" not found")
	assert.Contains(t, stdout, "Usage:")

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Success(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "scores.html")
	csvDir := filepath.Join(dir, "csv")
	metrics := filepath.Join(dir, "metrics", "confstats.prom")

	code, stdout := runCommand(t, "-out", out, "-csv-dir", csvDir, "-metrics", metrics, writeArchive(t))
	require.Equal(t, apperrors.ExitOK, code, stdout)
	assert.Contains(t, stdout, "Wrote "+out)

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1> ESA 2021 score statistics</h1>")
	assert.Contains(t, string(html), "<td>Algorithms</td>")

	_, err = os.Stat(filepath.Join(csvDir, "reviewers.csv"))
	assert.NoError(t, err)

	content, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(content), "confstats_reviews_loaded_total 2")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "scores.html")
	cfgPath := filepath.Join(dir, "confstats.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("conference:\n  name: SWAT 2022\n"), 0644))

	code, _ := runCommand(t, "-config", cfgPath, "-out", out, writeArchive(t))
	require.Equal(t, apperrors.ExitOK, code)

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1> SWAT 2022 score statistics</h1>")
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "confstats.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("conference:\n  scores: [1, 2, 3]\n"), 0644))

	code, _ := runCommand(t, "-config", cfgPath, "-out", filepath.Join(dir, "scores.html"), writeArchive(t))
	assert.Equal(t, apperrors.ExitFailure, code)
}

func TestRun_NoReviews(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "scores.html")

	code, _ := runCommand(t, "-out", out, testutil.NewExport().Topics(1, "Algorithms").Write(t))
	assert.Equal(t, apperrors.ExitFailure, code)

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Version(t *testing.T) {
	code, out := runCommand(t, "-version")
	assert.Equal(t, apperrors.ExitOK, code)
	assert.Contains(t, out, "confstats v"+contracts.Version)
}
