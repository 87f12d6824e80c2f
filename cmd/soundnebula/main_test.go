package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/adam-broussard/SoundNebula/config"
	"github.com/adam-broussard/SoundNebula/neighbors"
)

var testCatalogues = map[string]string{
	"snap_000.txt": `# label = box.000100
# z = 1
# t = 5
1 10 10 10 -1
2 10 10 15 -1
`,
	"snap_001.txt": `# label = box.000200
# z = 0
# t = 13
1 20 20 20 1
2 20 20 24 2
3 90 90 90 -1
`,
}

func catalogueDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "box")
	require.NoError(t, os.Mkdir(dir, 0o755))
	for name, text := range testCatalogues {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
	}
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	base := []string{
		"--backend", "ascii", "--catalogue-dir", catalogueDir(t),
		"--simulation", "box", "--log-level", "error",
	}
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args[:1:1], append(base, args[1:]...)...))
	err := cmd.Execute()
	return out.String(), err
}

func TestTimestepsCmd(t *testing.T) {
	out, err := run(t, "timesteps")
	require.NoError(t, err)
	assert.Contains(t, out, "# Timesteps of box")
	assert.Contains(t, out, "box.000100")
	assert.Contains(t, out, "box.000200")
}

func TestNeighborsCmd(t *testing.T) {
	out, err := run(t, "neighbors", "--latest-timestep", "200",
		"--earliest-timestep", "100", "--region-size", "5", "--box-size", "100")
	require.NoError(t, err)

	lines := []string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "box.000200"))
	assert.True(t, strings.HasSuffix(lines[0], " 1,2"))
	assert.True(t, strings.HasPrefix(lines[1], "box.000100"))
	assert.True(t, strings.HasSuffix(lines[1], " 1,2"))
}

func TestNeighborsCmdJSON(t *testing.T) {
	out, err := run(t, "neighbors", "--latest-timestep", "200",
		"--earliest-timestep", "100", "--region-size", "4.5",
		"--box-size", "100", "--exclude-center", "--index", "grid", "--json")
	require.NoError(t, err)

	res := &neighbors.Result{}
	require.NoError(t, json.Unmarshal([]byte(out), res))
	require.Len(t, res.Steps, 2)
	assert.Equal(t, []int{2}, res.Steps[0].Halos)
	assert.Equal(t, []int{}, res.Steps[1].Halos)
	assert.Equal(t, 13.0, res.Steps[0].Time)
}

func TestNeighborsCmdErrors(t *testing.T) {
	_, err := run(t, "neighbors", "--latest-timestep", "200",
		"--earliest-timestep", "100")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "neighbors", "--latest-timestep", "300",
		"--earliest-timestep", "100", "--region-size", "5")
	assert.ErrorIs(t, err, neighbors.ErrTimestepNotFound)

	out, err := run(t, "neighbors", "--center-halo", "3", "--latest-timestep", "200",
		"--earliest-timestep", "100", "--region-size", "5", "--box-size", "100")
	assert.ErrorIs(t, err, neighbors.ErrProgenitorExhausted)
	assert.Contains(t, out, "box.000200")

	_, err = run(t, "timesteps", "--backend", "pynbody")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestProgenitorsCmd(t *testing.T) {
	out, err := run(t, "progenitors", "--center-halo", "2", "--latest-timestep", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "# Main progenitors of halo 2 in box.000200")
	assert.Contains(t, out, "box.000100")

	_, err = run(t, "progenitors")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "progenitors", "--latest-timestep", "200",
		"--earliest-timestep", "100")
	assert.ErrorContains(t, err, "unknown flag: --earliest-timestep")
}

func TestHistoryCmd(t *testing.T) {
	out, err := run(t, "history", "--latest-timestep", "200",
		"--earliest-timestep", "100", "--at", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "# 1 - distance")
	assert.Contains(t, out, "25.9808")

	_, err = run(t, "history", "--latest-timestep", "200",
		"--earliest-timestep", "100", "--property", "mass")
	assert.Error(t, err)
}

func TestLoggerConfig(t *testing.T) {
	zcfg, err := loggerConfig("debug")
	require.NoError(t, err)
	assert.True(t, zcfg.Development)
	assert.Equal(t, zapcore.DebugLevel, zcfg.Level.Level())

	zcfg, err = loggerConfig("warn")
	require.NoError(t, err)
	assert.False(t, zcfg.Development)
	assert.Equal(t, zapcore.WarnLevel, zcfg.Level.Level())
	assert.Equal(t, "console", zcfg.Encoding)

	_, err = loggerConfig("loud")
	assert.Error(t, err)
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "-", joinInts(nil))
	assert.Equal(t, "1,20,300", joinInts([]int{1, 20, 300}))
}
