package dispatch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/shimenv/internal/dispatch"
	"github.com/hbjs97/shimenv/internal/envdiff"
	"github.com/hbjs97/shimenv/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+), which is unavailable on the
// Go 1.21 toolchain this module is built with.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	t.Setenv("PWD", abs)
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

// setup은 임시 홈과 .envrc가 있는 프로젝트를 만들고 cwd를 프로젝트로 옮긴다.
func setup(t *testing.T) (*dispatch.Engine, *project.Context) {
	t.Helper()

	home := t.TempDir()
	projDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projDir, ".envrc"), []byte("export A=1\n"), 0600))

	proj, err := project.Resolve(projDir)
	require.NoError(t, err)

	chdir(t, projDir)
	return dispatch.New(home), proj
}

func writeExecutable(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho hello world\n"), 0755))
}

func TestResolve_NoSnapshotDispatchesPlain(t *testing.T) {
	engine, _ := setup(t)

	realDir := t.TempDir()
	writeExecutable(t, filepath.Join(realDir, "hello"))
	t.Setenv("PATH", project.BinDir(engine.Home)+":"+realDir)

	res, err := engine.Resolve("hello")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realDir, "hello"), res.Path)
	assert.Empty(t, res.Vars)
}

func TestResolve_StripsOwnBinDir(t *testing.T) {
	engine, _ := setup(t)

	binDir := project.BinDir(engine.Home)
	writeExecutable(t, filepath.Join(binDir, "hello")) // 자기 디렉토리의 shim은 무시해야 한다
	realDir := t.TempDir()
	writeExecutable(t, filepath.Join(realDir, "hello"))
	t.Setenv("PATH", binDir+":"+realDir)

	res, err := engine.Resolve("hello")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realDir, "hello"), res.Path)

	for _, kv := range res.Environ {
		if len(kv) > 5 && kv[:5] == "PATH=" {
			assert.NotContains(t, kv, binDir)
		}
	}
}

func TestResolve_AppliesSnapshotVars(t *testing.T) {
	engine, proj := setup(t)

	bogus := filepath.Join(proj.Root, "bogus")
	writeExecutable(t, filepath.Join(bogus, "hello"))

	t.Setenv("PATH", project.BinDir(engine.Home)+":/usr/bin:/bin")
	snap := &envdiff.Snapshot{
		Vars: map[string]string{
			"PATH":    bogus + ":/usr/bin:/bin",
			"MYVALUE": "canary",
		},
		NewPathEntries: []string{bogus},
	}
	require.NoError(t, engine.Store.Write(proj.CacheKey, snap))

	res, err := engine.Resolve("hello")
	require.NoError(t, err)

	// 스냅샷의 PATH가 물려받은 PATH를 이기고, bogus/hello로 해석된다.
	assert.Equal(t, filepath.Join(bogus, "hello"), res.Path)
	assert.Contains(t, res.Environ, "MYVALUE=canary")
}

func TestResolve_SnapshotWinsOnCollision(t *testing.T) {
	engine, proj := setup(t)

	t.Setenv("PATH", "/usr/bin:/bin")
	t.Setenv("EDITOR", "vi")
	snap := &envdiff.Snapshot{Vars: map[string]string{"EDITOR": "nvim"}}
	require.NoError(t, engine.Store.Write(proj.CacheKey, snap))

	res, err := engine.Resolve("sh")
	require.NoError(t, err)
	assert.Contains(t, res.Environ, "EDITOR=nvim")
	assert.NotContains(t, res.Environ, "EDITOR=vi")
}

func TestResolve_ReentrancyGuardIgnoresSnapshot(t *testing.T) {
	engine, proj := setup(t)

	t.Setenv("PATH", "/usr/bin:/bin")
	snap := &envdiff.Snapshot{Vars: map[string]string{"MYVALUE": "stale"}}
	require.NoError(t, engine.Store.Write(proj.CacheKey, snap))

	t.Setenv("SHIMENV_NO_SHIM", "1")

	res, err := engine.Resolve("sh")
	require.NoError(t, err)
	assert.NotContains(t, res.Environ, "MYVALUE=stale")
	assert.Empty(t, res.Vars)
}

func TestResolve_CommandNotFound(t *testing.T) {
	engine, _ := setup(t)

	t.Setenv("PATH", project.BinDir(engine.Home))

	_, err := engine.Resolve("no-such-command")
	assert.ErrorIs(t, err, dispatch.ErrCommandNotFound)
}

func TestResolve_CorruptCacheSurfaced(t *testing.T) {
	engine, proj := setup(t)

	envsDir := project.EnvsDir(engine.Home)
	require.NoError(t, os.MkdirAll(envsDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(envsDir, proj.CacheKey), []byte("{broken"), 0600))
	t.Setenv("PATH", "/usr/bin:/bin")

	_, err := engine.Resolve("sh")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, dispatch.ErrCommandNotFound)
}

func TestResolve_OutsideProjectUsesAmbientOnly(t *testing.T) {
	home := t.TempDir()
	outside := t.TempDir()
	chdir(t, outside)

	realDir := t.TempDir()
	writeExecutable(t, filepath.Join(realDir, "hello"))
	t.Setenv("PATH", realDir)

	engine := dispatch.New(home)
	res, err := engine.Resolve("hello")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realDir, "hello"), res.Path)
}

func TestResolve_UsesBasenameOfInvocation(t *testing.T) {
	engine, _ := setup(t)

	realDir := t.TempDir()
	writeExecutable(t, filepath.Join(realDir, "hello"))
	t.Setenv("PATH", realDir)

	// shim은 보통 전체 경로(argv[0])로 호출된다.
	res, err := engine.Resolve(filepath.Join(project.BinDir(engine.Home), "hello"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realDir, "hello"), res.Path)
}
