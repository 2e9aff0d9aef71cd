package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/hbjs97/shimenv/internal/project"
	"github.com/hbjs97/shimenv/internal/store"
	"github.com/spf13/cobra"
)

func (a *App) newVarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vars",
		Short: "캐시된 환경 변수를 KEY=VALUE로 출력한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVars(cmd)
		},
	}
}

func (a *App) runVars(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.vars: %w", err)
	}
	proj, err := project.Resolve(cwd)
	if err != nil {
		return fmt.Errorf("cli.vars: %w", err)
	}

	st := store.New(project.EnvsDir(a.Home))
	snap, err := st.Read(proj.CacheKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("cli.vars: 캐시된 스냅샷이 없습니다. 먼저 'shimenv reload'를 실행하세요")
		}
		return fmt.Errorf("cli.vars: %w", err)
	}

	keys := make([]string, 0, len(snap.Vars))
	for key := range snap.Vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := cmd.OutOrStdout()
	for _, key := range keys {
		fmt.Fprintf(out, "%s=%s\n", key, snap.Vars[key])
	}
	return nil
}
