package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hbjs97/shimenv/internal/cmdexec"
	"github.com/hbjs97/shimenv/internal/pathutil"
	"github.com/hbjs97/shimenv/internal/project"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// CheckInterpreter는 .envrc 평가에 쓸 인터프리터 존재 여부를 확인한다.
func CheckInterpreter(ctx context.Context, cmd cmdexec.Commander, interpreter string) DiagResult {
	out, err := cmd.Output(ctx, interpreter, "--version")
	if err != nil {
		return DiagResult{
			Name:    "interpreter",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 없음", interpreter),
			Fix:     fmt.Sprintf("%s를 설치하거나 config.toml의 interpreter를 변경하세요", interpreter),
		}
	}
	return DiagResult{
		Name:    "interpreter",
		Status:  StatusOK,
		Message: firstLine(out),
	}
}

// CheckDirenv는 기본 prelude가 의존하는 direnv 존재 여부를 확인한다.
// prelude를 바꿔 쓰는 환경에서는 경고일 뿐 실패가 아니다.
func CheckDirenv(ctx context.Context, cmd cmdexec.Commander) DiagResult {
	out, err := cmd.Output(ctx, "direnv", "version")
	if err != nil {
		return DiagResult{
			Name:    "direnv",
			Status:  StatusWarn,
			Message: "direnv 없음: 기본 prelude가 동작하지 않습니다",
			Fix:     "direnv를 설치하거나 SHIMENV_PRELUDE를 재정의하세요",
		}
	}
	return DiagResult{
		Name:    "direnv",
		Status:  StatusOK,
		Message: "direnv " + firstLine(out),
	}
}

// CheckBinDirOnPath는 bin 디렉토리가 PATH에 있고 맨 앞인지 확인한다.
// shim은 실제 바이너리보다 먼저 해석될 때만 의미가 있다.
func CheckBinDirOnPath(home, pathValue string) DiagResult {
	binDir := project.BinDir(home)
	entries := pathutil.Split(pathValue)

	for i, entry := range entries {
		if !pathutil.SameDir(entry, binDir) {
			continue
		}
		if i == 0 {
			return DiagResult{
				Name:    "bin_dir",
				Status:  StatusOK,
				Message: fmt.Sprintf("%s이(가) PATH 맨 앞에 있음", binDir),
			}
		}
		return DiagResult{
			Name:    "bin_dir",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s이(가) PATH %d번째에 있음: 앞선 엔트리가 shim을 가릴 수 있습니다", binDir, i+1),
			Fix:     fmt.Sprintf("PATH 맨 앞에 %s를 두세요", binDir),
		}
	}
	return DiagResult{
		Name:    "bin_dir",
		Status:  StatusFail,
		Message: fmt.Sprintf("%s이(가) PATH에 없음", binDir),
		Fix:     fmt.Sprintf(`export PATH=%q:"$PATH"를 셸 프로필에 추가하세요`, binDir),
	}
}

// CheckHomeWritable은 설정 루트 생성/쓰기 가능 여부를 확인한다.
func CheckHomeWritable(home string) DiagResult {
	if err := os.MkdirAll(home, 0700); err != nil {
		return DiagResult{
			Name:    "home",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 생성 실패: %v", home, err),
		}
	}
	probe, err := os.CreateTemp(home, ".doctor-*")
	if err != nil {
		return DiagResult{
			Name:    "home",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s에 쓸 수 없음: %v", home, err),
		}
	}
	probe.Close()
	os.Remove(probe.Name())
	return DiagResult{
		Name:    "home",
		Status:  StatusOK,
		Message: home + " 쓰기 가능",
	}
}

// RunAll은 전체 진단을 순서대로 실행한다.
func RunAll(ctx context.Context, cmd cmdexec.Commander, home, interpreter, pathValue string) []DiagResult {
	return []DiagResult{
		CheckInterpreter(ctx, cmd, interpreter),
		CheckDirenv(ctx, cmd),
		CheckBinDirOnPath(home, pathValue),
		CheckHomeWritable(home),
	}
}

func firstLine(out []byte) string {
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line
}
