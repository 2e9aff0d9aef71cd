package cli

import (
	"fmt"

	"github.com/hbjs97/shimenv/internal/grid"
	"github.com/hbjs97/shimenv/internal/logging"
	"github.com/hbjs97/shimenv/internal/project"
	"github.com/hbjs97/shimenv/internal/registry"
	"github.com/spf13/cobra"
)

func (a *App) newUnshimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unshim <command>...",
		Short: "명령의 shim을 제거한다",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUnshim(args)
		},
	}
}

func (a *App) runUnshim(names []string) error {
	reg := registry.New(project.BinDir(a.Home), a.SelfPath)
	result, err := reg.Remove(names)
	if err != nil {
		return fmt.Errorf("cli.unshim: %w", err)
	}
	if result.SkippedSelf {
		logging.Warnf("%s 자신은 unshim하지 않습니다", registry.SelfName)
	}
	logging.Infof("%d개의 shim을 %s에서 제거했습니다.", result.Removed, reg.BinDir())
	return nil
}

func (a *App) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "설치된 shim 목록을 보여준다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New(project.BinDir(a.Home), a.SelfPath)
			names, err := reg.List()
			if err != nil {
				return fmt.Errorf("cli.list: %w", err)
			}
			grid.Print(cmd.OutOrStdout(), names)
			return nil
		},
	}
}
