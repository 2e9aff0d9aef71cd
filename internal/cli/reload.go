package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hbjs97/shimenv/internal/config"
	"github.com/hbjs97/shimenv/internal/envdiff"
	"github.com/hbjs97/shimenv/internal/logging"
	"github.com/hbjs97/shimenv/internal/project"
	"github.com/hbjs97/shimenv/internal/registry"
	"github.com/hbjs97/shimenv/internal/runner"
	"github.com/hbjs97/shimenv/internal/store"
	"github.com/spf13/cobra"
)

func (a *App) newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: ".envrc를 실행하고 환경 델타를 캐시한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReload(cmd)
		},
	}
}

func (a *App) runReload(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.reload: %w", err)
	}
	proj, err := project.Resolve(cwd)
	if err != nil {
		return fmt.Errorf("cli.reload: %w", err)
	}
	cfg, err := config.Load(a.Home)
	if err != nil {
		return fmt.Errorf("cli.reload: %w", err)
	}

	st := store.New(project.EnvsDir(a.Home))
	prior, err := st.Read(proj.CacheKey)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			prior = nil
		case errors.Is(err, store.ErrCacheCorrupt):
			// reload 자체가 복구 수단이다. 경고만 남기고 덮어쓴다.
			logging.Warnf("%v", err)
			prior = nil
		default:
			return fmt.Errorf("cli.reload: %w", err)
		}
	}

	r := &runner.Runner{
		Commander:   a.Commander,
		Interpreter: cfg.Interpreter,
		Prelude:     cfg.EffectivePrelude(),
		Stdin:       cmd.InOrStdin(),
		Passthrough: cmd.OutOrStdout(),
	}
	snap, err := r.Run(cmd.Context(), proj)
	if err != nil {
		// 실패 시 기존 캐시는 건드리지 않는다.
		return fmt.Errorf("cli.reload: %w", err)
	}

	if err := st.Write(proj.CacheKey, snap); err != nil {
		return fmt.Errorf("cli.reload: %w", err)
	}

	reportNewPathEntries(prior, snap)
	a.warnUnshimmed(cfg, prior, snap, proj.Root)
	return nil
}

// reportNewPathEntries는 직전 스냅샷에 없던 PATH 엔트리만 알린다.
// 같은 .envrc를 다시 reload하면 아무것도 출력하지 않는다.
func reportNewPathEntries(prior, snap *envdiff.Snapshot) {
	for _, entry := range snap.NewPathEntries {
		if prior != nil && slices.Contains(prior.NewPathEntries, entry) {
			continue
		}
		logging.Infof("new PATH entry: %s", entry)
	}
}

// warnUnshimmed는 스냅샷의 PATH 엔트리에 있지만 아직 shim되지 않은 명령을
// 경고한다. 직전 스냅샷 기준으로 새로 생긴 수를 함께 보여준다.
func (a *App) warnUnshimmed(cfg *config.Config, prior, snap *envdiff.Snapshot, root string) {
	if !cfg.IsShimWarnings() {
		return
	}
	reg := registry.New(project.BinDir(a.Home), a.SelfPath)
	missing := reg.Missing(snap, root)
	if len(missing) == 0 {
		return
	}
	newCount := 0
	var priorMissing []string
	if prior != nil {
		priorMissing = reg.Missing(prior, root)
	}
	for _, name := range missing {
		if !slices.Contains(priorMissing, name) {
			newCount++
		}
	}
	logging.Warnf("%d개의 명령(새로 %d개)이 아직 shim되지 않았습니다. 'shimenv shim'으로 설치하세요.", len(missing), newCount)
	logging.Warnf("이 경고는 SHIMENV_NO_SHIM_WARNINGS=1로 끌 수 있습니다.")
}
