package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadpath/config"
)

// nyCo puts node 1 on Manhattan and node 2 on ManhattanNeighbour, the
// endpoints of the NY benchmark scenarios.
const (
	nyCo = `p aux sp co 3
v 1 -73971200 40783100
v 2 -73971500 40783500
v 3 -73972000 40784000
`
	nyGr = `p sp 3 4
a 1 2 60
a 2 1 60
a 2 3 80
a 3 2 80
`
)

func mapsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	base := filepath.Join(dir, "USA-road-d.NY")
	require.NoError(t, os.WriteFile(base+".gr", []byte(nyGr), 0o644))
	require.NoError(t, os.WriteFile(base+".co", []byte(nyCo), 0o644))
	return dir
}

func TestRun_StoresAndBrowses(t *testing.T) {
	dir := mapsDir(t)
	db := filepath.Join(t.TempDir(), "runs.db")
	csvPath := filepath.Join(dir, "records.csv")
	ctx := context.Background()

	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"-maps-dir", dir, "-db", db, "-csv", csvPath, "-out", filepath.Join(dir, "out")}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	for _, want := range []string{"01-NY-very-short", "02-NY-invalid-coordinate", "13-NY-identity", "IDENTITY", "ERROR"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "04-COL-mountain", "maps that are absent are skipped")
	assert.Contains(t, out, "saved to "+db)

	csvBody, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(csvBody)), "\n"), 4)

	path, err := os.ReadFile(filepath.Join(dir, "out", "solution_01-NY-very-short.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1 - (60) - 2\n", string(path))

	stdout.Reset()
	require.Equal(t, 0, run(ctx, []string{"-db", db, "-list"}, &stdout, &stderr))
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "records=3 failed=0")

	id := strings.Fields(lines[0])[0]
	stdout.Reset()
	require.Equal(t, 0, run(ctx, []string{"-db", db, "-show", id}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "13-NY-identity")

	stderr.Reset()
	assert.Equal(t, 1, run(ctx, []string{"-db", db, "-show", "missing"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `no records for run "missing"`)
}

func TestRun_NoMaps(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-maps-dir", t.TempDir(), "-no-store"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "No scenarios ran")
}

func TestRun_Only(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-maps-dir", mapsDir(t), "-no-store", "-only", "USA-road-d.COL"}, &stdout, &stderr)
	assert.Equal(t, 1, code, "the NY map is filtered out, nothing runs")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(config.EnvDBPath, "/var/lib/roadpath.db")
	cfg, err := LoadConfig(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/roadpath.db", cfg.DBPath)
	assert.False(t, cfg.NoStore)

	_, err = LoadConfig([]string{"-list", "-show", "x"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrInvalid)
	_, err = LoadConfig([]string{"stray"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrInvalid)
}
