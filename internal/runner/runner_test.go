package runner_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/shimenv/internal/cmdexec"
	"github.com/hbjs97/shimenv/internal/project"
	"github.com/hbjs97/shimenv/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T, envrc string) *project.Context {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".envrc"), []byte(envrc), 0600))

	proj, err := project.Resolve(dir)
	require.NoError(t, err)
	return proj
}

func newRunner(out *bytes.Buffer) *runner.Runner {
	return &runner.Runner{
		Commander:   &cmdexec.RealCommander{},
		Interpreter: "bash",
		Prelude:     "", // 테스트에서는 direnv stdlib 없이 .envrc만 평가한다.
		Passthrough: out,
	}
}

func TestRun_CapturesExportedVars(t *testing.T) {
	t.Parallel()

	proj := newProject(t, "export MYVALUE=canary\nexport PATH=bogus:$PATH\n")
	out := new(bytes.Buffer)

	snap, err := newRunner(out).Run(context.Background(), proj)
	require.NoError(t, err)

	assert.Equal(t, "canary", snap.Vars["MYVALUE"])
	assert.Equal(t, []string{"bogus"}, snap.NewPathEntries)
}

func TestRun_PassesThroughScriptOutput(t *testing.T) {
	t.Parallel()

	proj := newProject(t, "echo hello world\n")
	out := new(bytes.Buffer)

	snap, err := newRunner(out).Run(context.Background(), proj)
	require.NoError(t, err)

	assert.Equal(t, "hello world\n", out.String())
	assert.Empty(t, snap.NewPathEntries)
}

func TestRun_ScriptFailure(t *testing.T) {
	t.Parallel()

	proj := newProject(t, "exit 1\n")

	_, err := newRunner(new(bytes.Buffer)).Run(context.Background(), proj)
	assert.ErrorIs(t, err, runner.ErrScript)
}

func TestRun_SetsReentrancyMarker(t *testing.T) {
	t.Parallel()

	proj := newProject(t, "echo marker=$SHIMENV_NO_SHIM\n")
	out := new(bytes.Buffer)

	_, err := newRunner(out).Run(context.Background(), proj)
	require.NoError(t, err)

	assert.Equal(t, "marker=1\n", out.String())
}

func TestRun_MultilineValue(t *testing.T) {
	t.Parallel()

	proj := newProject(t, "export MULTI=$'line1\\nline2'\n")

	snap, err := newRunner(new(bytes.Buffer)).Run(context.Background(), proj)
	require.NoError(t, err)

	assert.Equal(t, "line1\nline2", snap.Vars["MULTI"])
}

func TestRun_PreludeRunsBeforeEnvrc(t *testing.T) {
	t.Parallel()

	proj := newProject(t, "echo from_prelude=$FROM_PRELUDE\n")
	out := new(bytes.Buffer)

	r := newRunner(out)
	r.Prelude = "export FROM_PRELUDE=yes"

	_, err := r.Run(context.Background(), proj)
	require.NoError(t, err)

	assert.Equal(t, "from_prelude=yes\n", out.String())
}

func TestRun_RemovesTempScript(t *testing.T) {
	t.Parallel()

	proj := newProject(t, "export A=1\n")

	_, err := newRunner(new(bytes.Buffer)).Run(context.Background(), proj)
	require.NoError(t, err)

	entries, err := os.ReadDir(proj.Root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".envrc", entries[0].Name())
}

func TestRun_UnchangedEnvYieldsEmptySnapshot(t *testing.T) {
	t.Parallel()

	proj := newProject(t, "true\n")

	snap, err := newRunner(new(bytes.Buffer)).Run(context.Background(), proj)
	require.NoError(t, err)

	// 셸 자신이 만드는 변수(SHLVL, _ 등)가 섞일 수는 있지만 PATH 신규
	// 엔트리는 없어야 한다.
	assert.Empty(t, snap.NewPathEntries)
	assert.NotContains(t, snap.Vars, "MYVALUE")
}
