package cli

import (
	"fmt"
	"os"

	"github.com/hbjs97/shimenv/internal/cmdexec"
	"github.com/hbjs97/shimenv/internal/project"
	"github.com/spf13/cobra"
)

// App은 CLI 전체가 공유하는 의존성이다. 테스트는 임시 홈과 FakeCommander,
// FakeConfirmer를 주입한다.
type App struct {
	// Home은 설정 루트다 (bin/, envs/, config.toml의 부모).
	Home string
	// Commander는 외부 프로세스 실행 추상화다.
	Commander cmdexec.Commander
	// Confirmer는 자동 shim 모드의 확인 프롬프트다.
	Confirmer Confirmer
	// SelfPath는 shim 심링크가 가리킬 shimenv 실행 파일 경로다.
	SelfPath string
}

// NewApp은 프로덕션 의존성으로 App을 생성한다.
func NewApp() (*App, error) {
	home, err := project.HomeDir()
	if err != nil {
		return nil, err
	}
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("cli.NewApp: 자기 실행 파일 확인 실패: %w", err)
	}
	return &App{
		Home:      home,
		Commander: &cmdexec.RealCommander{},
		Confirmer: &HuhConfirmer{},
		SelfPath:  self,
	}, nil
}

// NewRootCmd는 shimenv CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shimenv",
		Short:         "캐시 기반 .envrc 환경 매니저",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `shimenv는 디렉토리를 옮길 때마다 .envrc를 재실행하는 대신,
'reload'로 한 번 실행한 결과를 캐시하고 shim 바이너리로 명령 단위 환경을
주입한다.

환경 변수:
  SHIMENV_HOME              설정 루트 재지정 (기본 ~/.shimenv)
  SHIMENV_LOG=debug         shim 실행 경로까지 디버그 출력
  SHIMENV_NO_SHIM=1         스냅샷 적용을 끄고 물려받은 환경만 사용
  SHIMENV_PRELUDE           .envrc 앞에 주입할 코드 재정의
  SHIMENV_NO_SHIM_WARNINGS=1  미설치 shim 경고 억제`,
	}

	cmd.PersistentFlags().StringVar(&a.Home, "home", a.Home, "설정 루트 디렉토리")

	cmd.AddCommand(
		a.newReloadCmd(),
		a.newVarsCmd(),
		a.newShimCmd(),
		a.newUnshimCmd(),
		a.newListCmd(),
		a.newWhichCmd(),
		a.newExecCmd(),
		a.newDoctorCmd(),
	)
	return cmd
}
