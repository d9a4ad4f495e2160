package main

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stringnet/config"
	"github.com/katalvlaran/stringnet/store/sqlite"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestWindingCmd_Striped(t *testing.T) {
	out, err := execute(t, "winding", "--lx", "6", "--ly", "4", "--initial", "striped")
	require.NoError(t, err)
	assert.Contains(t, out, "column 0: 4\n")
	assert.Contains(t, out, "row 3: 0\n")
	assert.Contains(t, out, "horizontal: 0 vertical: 1 consistent: true")
}

func TestWindingCmd_EnvOverride(t *testing.T) {
	t.Setenv("STRINGNET_LX", "6")
	t.Setenv("STRINGNET_LY", "4")
	out, err := execute(t, "winding", "--sample", "50", "--kind", "walk")
	require.NoError(t, err)
	assert.Contains(t, out, "column 5:")
	assert.NotContains(t, out, "column 6:")
	assert.Contains(t, out, "consistent: true")
}

func TestClusterCmd_Striped(t *testing.T) {
	out, err := execute(t, "--log-level", "debug", "cluster",
		"--lx", "4", "--ly", "4", "--initial", "striped", "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "members:  4\n")
	assert.Contains(t, out, "clusters: 4\n")
	assert.Contains(t, out, "mean:     4.000\n")
	assert.Contains(t, out, "largest:  4\n")
}

func TestRunCmd_ResultsAndResume(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "results.db")
	ckpt := filepath.Join(dir, "ckpt")
	common := []string{
		"run", "--lx", "4", "--ly", "4", "--measurements", "2", "--updates", "2",
		"--results-db", db, "--checkpoint-dir", ckpt,
	}

	out, err := execute(t, append(common, "--bins", "2")...)
	require.NoError(t, err)
	assert.Contains(t, out, "bins:       2 (from 0)")
	m := regexp.MustCompile(`run:\s+(\S+)`).FindStringSubmatch(out)
	require.Len(t, m, 2)
	id := m[1]

	out, err = execute(t, append(common, "--bins", "3", "--resume", id)...)
	require.NoError(t, err)
	assert.Contains(t, out, "run:        "+id)
	assert.Contains(t, out, "bins:       1 (from 2)")

	store, err := sqlite.Open(context.Background(), db)
	require.NoError(t, err)
	defer store.Close()
	run, err := store.GetRun(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, sqlite.StatusFinished, run.Status)
	recs, err := store.Results(context.Background(), id, "total_link_count")
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestRunCmd_InvalidConfig(t *testing.T) {
	_, err := execute(t, "run", "--lx", "3")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "run", "--tuning", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSweepCmd(t *testing.T) {
	out, err := execute(t, "sweep", "--lx", "4", "--ly", "4", "--bins", "1",
		"--measurements", "2", "--updates", "2", "--tunings", "0.5,2", "--parallel", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TUNING"))
	assert.True(t, strings.HasPrefix(lines[1], "0.5 "))
	assert.True(t, strings.HasPrefix(lines[2], "2 "))

	_, err = execute(t, "sweep")
	assert.Error(t, err, "--tunings is required")
}

func TestRootFlags_Errors(t *testing.T) {
	_, err := execute(t, "--log-format", "xml", "winding")
	assert.Error(t, err)
	_, err = execute(t, "--log-level", "loud", "winding")
	assert.Error(t, err)
	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "winding")
	assert.Error(t, err)
}
