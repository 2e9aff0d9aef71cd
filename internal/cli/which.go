package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hbjs97/shimenv/internal/dispatch"
	"github.com/hbjs97/shimenv/internal/pathutil"
	"github.com/hbjs97/shimenv/internal/project"
	"github.com/spf13/cobra"
)

func (a *App) newWhichCmd() *cobra.Command {
	var pretendShimmed bool

	cmd := &cobra.Command{
		Use:   "which <command>",
		Short: "shim이 실제로 실행할 바이너리 경로를 보여준다",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWhich(cmd, args[0], pretendShimmed)
		},
	}
	cmd.Flags().BoolVar(&pretendShimmed, "pretend-shimmed", false, "shim 설치 여부 검사를 생략")
	return cmd
}

func (a *App) runWhich(cmd *cobra.Command, name string, pretendShimmed bool) error {
	if !pretendShimmed {
		if err := a.verifyShimmed(name); err != nil {
			return err
		}
	}

	engine := dispatch.New(a.Home)
	res, err := engine.Resolve(name)
	if err != nil {
		return fmt.Errorf("cli.which: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Path)
	return nil
}

// verifyShimmed는 현재 PATH에서 name이 실제로 shimenv의 shim으로 해석되는지
// 확인한다. 그렇지 않으면 dispatch 결과가 현실과 다를 수 있다.
func (a *App) verifyShimmed(name string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.which: %w", err)
	}
	found, err := pathutil.LookPath(name, os.Getenv("PATH"), cwd)
	if err != nil {
		return fmt.Errorf("cli.which: %q이(가) PATH에 없습니다: %w", name, err)
	}
	shimPath := filepath.Join(project.BinDir(a.Home), name)
	if found != shimPath && !pathutil.SameDir(filepath.Dir(found), filepath.Dir(shimPath)) {
		return fmt.Errorf("cli.which: %q은(는) shim되어 있지 않습니다 (%s). 'shimenv shim %s' 후 다시 시도하거나 --pretend-shimmed를 사용하세요", name, found, name)
	}
	return nil
}
