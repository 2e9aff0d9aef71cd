package cli

import (
	"errors"

	"github.com/hbjs97/shimenv/internal/store"
)

// ExitCode는 shimenv의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitScriptFail는 .envrc 실행 실패다.
	ExitScriptFail ExitCode = 2
	// ExitShadowed는 기존 실행 파일이 shim을 가리는 경우다.
	ExitShadowed ExitCode = 3
	// ExitCommandNotFound는 shim 대상 명령을 찾지 못한 경우다.
	ExitCommandNotFound ExitCode = 4
	// ExitCacheCorrupt는 스냅샷 파일 손상이다.
	ExitCacheCorrupt ExitCode = 5
	// ExitInterrupted는 SIGINT로 중단된 경우다.
	ExitInterrupted ExitCode = ExitCode(store.InterruptedExitCode)
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrScript):
		return ExitScriptFail
	case errors.Is(err, ErrShadowed):
		return ExitShadowed
	case errors.Is(err, ErrCommandNotFound):
		return ExitCommandNotFound
	case errors.Is(err, ErrCacheCorrupt):
		return ExitCacheCorrupt
	default:
		return ExitGeneral
	}
}
