package envdiff_test

import (
	"testing"

	"github.com/hbjs97/shimenv/internal/envdiff"
	"github.com/stretchr/testify/assert"
)

func TestDiff_NewAndChangedVars(t *testing.T) {
	t.Parallel()

	ambient := map[string]string{
		"HOME":   "/home/user",
		"EDITOR": "vi",
	}
	produced := map[string]string{
		"HOME":    "/home/user",
		"EDITOR":  "nvim",
		"MYVALUE": "canary",
	}

	snap := envdiff.Diff(ambient, produced)

	assert.Equal(t, map[string]string{
		"EDITOR":  "nvim",
		"MYVALUE": "canary",
	}, snap.Vars)
}

func TestDiff_RemovedVarsNotTracked(t *testing.T) {
	t.Parallel()

	ambient := map[string]string{"GONE": "1"}
	produced := map[string]string{}

	snap := envdiff.Diff(ambient, produced)
	assert.Empty(t, snap.Vars)
}

func TestDiff_NewPathEntriesPreserveOrder(t *testing.T) {
	t.Parallel()

	ambient := map[string]string{"PATH": "/usr/bin:/bin"}
	produced := map[string]string{"PATH": "bogus:/usr/bin:extra:/bin"}

	snap := envdiff.Diff(ambient, produced)

	assert.Equal(t, []string{"bogus", "extra"}, snap.NewPathEntries)
	// PATH 자체도 변경된 변수로 잡혀야 한다.
	assert.Equal(t, "bogus:/usr/bin:extra:/bin", snap.Vars["PATH"])
}

func TestDiff_UnchangedPathYieldsNoEntries(t *testing.T) {
	t.Parallel()

	ambient := map[string]string{"PATH": "/usr/bin:/bin"}
	produced := map[string]string{"PATH": "/usr/bin:/bin"}

	snap := envdiff.Diff(ambient, produced)
	assert.Empty(t, snap.NewPathEntries)
	assert.NotContains(t, snap.Vars, "PATH")
}

func TestDiff_DuplicateNewEntriesCollapsed(t *testing.T) {
	t.Parallel()

	ambient := map[string]string{"PATH": "/bin"}
	produced := map[string]string{"PATH": "bogus:/bin:bogus"}

	snap := envdiff.Diff(ambient, produced)
	assert.Equal(t, []string{"bogus"}, snap.NewPathEntries)
}

func TestDiff_Deterministic(t *testing.T) {
	t.Parallel()

	ambient := map[string]string{"A": "1", "PATH": "/bin"}
	produced := map[string]string{"A": "2", "B": "3", "PATH": "x:/bin"}

	first := envdiff.Diff(ambient, produced)
	second := envdiff.Diff(ambient, produced)
	assert.Equal(t, first, second)
}

func TestParseEnviron(t *testing.T) {
	t.Parallel()

	env := envdiff.ParseEnviron([]string{"A=1", "B=x=y", "garbage"})
	assert.Equal(t, map[string]string{"A": "1", "B": "x=y"}, env)
}

func TestFormatEnviron_Sorted(t *testing.T) {
	t.Parallel()

	environ := envdiff.FormatEnviron(map[string]string{"B": "2", "A": "1"})
	assert.Equal(t, []string{"A=1", "B=2"}, environ)
}
