package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hbjs97/shimenv/internal/config"
	"github.com/hbjs97/shimenv/internal/doctor"
	"github.com/spf13/cobra"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "설치 상태를 진단한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (a *App) runDoctor(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load(a.Home)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] config: %v\n", err)
		fmt.Fprintf(out, "      Fix: %s/config.toml 확인\n", a.Home)
		return nil
	}

	results := doctor.RunAll(ctx, a.Commander, a.Home, cfg.Interpreter, os.Getenv("PATH"))
	printDiagResults(out, results)
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(out io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		fmt.Fprintf(out, "  [%s] %s: %s\n", statusIcon(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(out, "      Fix: %s\n", r.Fix)
		}
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return "OK"
	case doctor.StatusWarn:
		return "!!"
	case doctor.StatusFail:
		return "FAIL"
	default:
		return "??"
	}
}
