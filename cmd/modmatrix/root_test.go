package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modmatrix/internal/patch"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--env", ""}, args...))

	err := cmd.Execute()

	return stdout.String(), err
}

func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestTypes(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "types")
	require.NoError(t, err)
	assert.Regexp(t, `lfo\s+source\s+freq, phase, duty, type, mul, add`, out)
	assert.Regexp(t, `lowpass\s+processor\s+freq, q`, out)
	assert.Regexp(t, `follower\s+source\s+attack, release, mul, add`, out)
}

func TestRunPrintsDumps(t *testing.T) {
	t.Parallel()

	path := writeScript(t, `
objects:
  - {name: lfo, type: lfo, params: {freq: 2}}
  - {name: lp, type: lowpass}
steps:
  - {op: link, src: lfo, dest: lp, param: freq}
  - {op: process, blocks: 2}
  - {op: dump}
`)

	out, err := runCmd(t, "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# step 3: dump")
	assert.Contains(t, out, "lfo : LFO(sine, 2 Hz)")
	assert.Contains(t, out, "destination for: lfo(freq)")
}

func TestRunReportsFailingStep(t *testing.T) {
	t.Parallel()

	path := writeScript(t, `
objects:
  - {name: lfo, type: lfo}
steps:
  - {op: unlink, dest: lfo, param: nope}
`)

	_, err := runCmd(t, "run", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1 (unlink)")

	_, err = runCmd(t, "run", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRenderDC(t *testing.T) {
	t.Parallel()

	path := writeScript(t, `
block_size: 128
objects:
  - {name: lfo, type: lfo}
steps:
  - {op: process, blocks: 8}
`)

	out, err := runCmd(t, "render", "--quiet", "--input", "dc", "--amp", "0.25", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1024 (")
	assert.Contains(t, out, "0.2500 (-12.0 dBFS)")
	assert.NotContains(t, out, "dump")
}

func TestRenderSineThroughTremolo(t *testing.T) {
	t.Parallel()

	path := writeScript(t, `
objects:
  - {name: trem, type: tremolo, params: {depth: 0.5}}
steps:
  - {op: process, blocks: 100}
`)

	out, err := runCmd(t, "render", "--input", "sine", "--freq", "1000", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# render")
	assert.Regexp(t, `dominant:\s+(99\d|100\d)\.\d Hz`, out)

	_, err = runCmd(t, "render", "--input", "square", path)
	require.Error(t, err)
}

func TestRenderWithoutProcessing(t *testing.T) {
	t.Parallel()

	path := writeScript(t, "objects: [{name: s, type: sig}]\n")

	out, err := runCmd(t, "render", path)
	require.NoError(t, err)
	assert.Contains(t, out, "no blocks processed")
}

func TestResolvePrecedence(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(envSampleRate+"=44100\n"), 0o600))

	t.Setenv(envSampleRate, "")
	require.NoError(t, os.Unsetenv(envSampleRate))
	t.Setenv(envBlockSize, "32")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--env", envFile, "types"})
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	opts := &options{}
	ctx, err := opts.resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, patch.Context{SampleRate: 44100, BlockSize: 32}, ctx)

	ctx, err = opts.resolve(&patch.Script{SampleRate: 96000})
	require.NoError(t, err)
	assert.Equal(t, patch.Context{SampleRate: 96000, BlockSize: 32}, ctx)

	opts = &options{sampleRate: 22050, blockSize: 16}
	ctx, err = opts.resolve(&patch.Script{SampleRate: 96000, BlockSize: 256})
	require.NoError(t, err)
	assert.Equal(t, patch.Context{SampleRate: 22050, BlockSize: 16}, ctx)

	t.Setenv(envBlockSize, "zero")
	_, err = opts.resolve(nil)
	require.Error(t, err)
}

func TestEnvFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	opts := &options{envFile: filepath.Join(dir, "missing.env")}
	require.NoError(t, opts.loadEnv())

	bad := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(bad, []byte("BAD-KEY=1\n"), 0o600))

	opts = &options{envFile: bad}
	err := opts.loadEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load "+bad)

	_, err = runCmd(t, "--env", bad, "types")
	require.Error(t, err)
}

func TestRenderDumpStyling(t *testing.T) {
	t.Parallel()

	st := newStyles(&bytes.Buffer{}, defaultTheme)
	got := st.renderDump("lfo : LFO(sine, 1 Hz)\n\tsource for: \n\n\tdestination for: \n")
	assert.Contains(t, got, "LFO(sine, 1 Hz)")
	assert.Contains(t, got, "source for:")
	assert.Equal(t, "Nothing", st.renderDump("Nothing"))
}
