package cli

import (
	"github.com/hbjs97/shimenv/internal/dispatch"
	"github.com/hbjs97/shimenv/internal/registry"
	"github.com/hbjs97/shimenv/internal/runner"
	"github.com/hbjs97/shimenv/internal/store"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrScript는 .envrc 실행이 0이 아닌 코드로 끝났을 때의 sentinel error다.
	ErrScript = runner.ErrScript
	// ErrShadowed는 PATH 앞쪽의 기존 실행 파일이 shim을 가릴 때의 sentinel error다.
	ErrShadowed = registry.ErrShadowed
	// ErrCommandNotFound는 shim 대상 명령을 PATH에서 찾지 못했을 때의 sentinel error다.
	ErrCommandNotFound = dispatch.ErrCommandNotFound
	// ErrCacheCorrupt는 스냅샷 파일이 깨져 있을 때의 sentinel error다.
	ErrCacheCorrupt = store.ErrCacheCorrupt
)
