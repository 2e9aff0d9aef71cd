package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/hbjs97/shimenv/internal/grid"
	"github.com/hbjs97/shimenv/internal/logging"
	"github.com/hbjs97/shimenv/internal/project"
	"github.com/hbjs97/shimenv/internal/registry"
	"github.com/hbjs97/shimenv/internal/store"
	"github.com/spf13/cobra"
)

func (a *App) newShimCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "shim [command...]",
		Short: "명령에 대한 shim을 만든다 (이름 생략 시 현재 프로젝트에서 탐지)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShim(cmd, args, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "확인 프롬프트 생략")
	return cmd
}

func (a *App) runShim(cmd *cobra.Command, names []string, yes bool) error {
	reg := registry.New(project.BinDir(a.Home), a.SelfPath)

	if len(names) == 0 {
		detected, proceed, err := a.detectShimCandidates(cmd, reg, yes)
		if err != nil {
			return err
		}
		if !proceed {
			logging.Infof("취소되었습니다.")
			return nil
		}
		names = detected
	}
	if len(names) == 0 {
		logging.Infof("만들 shim이 없습니다.")
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.shim: %w", err)
	}
	result, err := reg.Create(names, os.Getenv("PATH"), cwd)
	if err != nil {
		return fmt.Errorf("cli.shim: %w", err)
	}

	if result.SkippedSelf {
		logging.Warnf("%s 자신은 shim하지 않습니다", registry.SelfName)
	}
	if result.Created > 0 {
		logging.Infof("%d개의 shim을 %s에 만들었습니다. 'shimenv unshim <command>'로 제거할 수 있습니다.",
			result.Created, reg.BinDir())
	} else if len(result.Failed) == 0 {
		logging.Infof("새로 만든 shim이 없습니다 (%d개는 이미 있음).", result.Existing)
	}

	if len(result.Failed) > 0 {
		for _, f := range result.Failed[1:] {
			logging.Errorf("%s: %v", f.Name, f.Err)
		}
		first := result.Failed[0]
		return fmt.Errorf("cli.shim: %s: %w", first.Name, first.Err)
	}
	return nil
}

// detectShimCandidates는 현재 프로젝트 스냅샷의 새 PATH 엔트리에서 아직
// shim되지 않은 실행 파일을 찾아 사용자 확인을 받는다.
func (a *App) detectShimCandidates(cmd *cobra.Command, reg *registry.Registry, yes bool) ([]string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, false, fmt.Errorf("cli.shim: %w", err)
	}
	proj, err := project.Resolve(cwd)
	if err != nil {
		return nil, false, fmt.Errorf("cli.shim: %w", err)
	}
	st := store.New(project.EnvsDir(a.Home))
	snap, err := st.Read(proj.CacheKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, false, fmt.Errorf("cli.shim: 캐시된 스냅샷이 없습니다. 먼저 'shimenv reload'를 실행하세요")
		}
		return nil, false, fmt.Errorf("cli.shim: %w", err)
	}

	missing := reg.Missing(snap, proj.Root)
	if len(missing) == 0 {
		return nil, true, nil
	}

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "%s의 환경에서 shim되지 않은 명령 %d개를 찾았습니다:\n\n", proj.Root, len(missing))
	grid.Print(errOut, missing)
	fmt.Fprintf(errOut, "\nshim은 %s에 만들어지며, 프로젝트 밖에서는 평소처럼 동작합니다.\n", reg.BinDir())

	if yes {
		return missing, true, nil
	}
	ok, err := a.Confirmer.Confirm(fmt.Sprintf("%d개의 shim을 만들까요?", len(missing)))
	if err != nil {
		return nil, false, fmt.Errorf("cli.shim: %w", err)
	}
	return missing, ok, nil
}
