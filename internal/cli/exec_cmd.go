package cli

import (
	"fmt"

	"github.com/hbjs97/shimenv/internal/dispatch"
	"github.com/spf13/cobra"
)

func (a *App) newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "shim 없이 캐시된 환경으로 명령을 실행한다",
		// 실행 대상의 플래그를 그대로 넘겨야 하므로 파싱하지 않는다.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
				return cmd.Help()
			}
			if len(args) > 0 && args[0] == "--" {
				args = args[1:]
			}
			if len(args) == 0 {
				return fmt.Errorf("cli.exec: 실행할 명령이 필요합니다")
			}
			return a.runExec(args[0], args[1:])
		},
	}
}

func (a *App) runExec(name string, args []string) error {
	engine := dispatch.New(a.Home)
	res, err := engine.Resolve(name)
	if err != nil {
		return fmt.Errorf("cli.exec: %w", err)
	}
	if err := engine.Exec(res, args); err != nil {
		return fmt.Errorf("cli.exec: %w", err)
	}
	return nil
}
