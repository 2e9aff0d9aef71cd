package cli

import (
	"path/filepath"

	"github.com/hbjs97/shimenv/internal/dispatch"
	"github.com/hbjs97/shimenv/internal/logging"
	"github.com/hbjs97/shimenv/internal/project"
	"github.com/hbjs97/shimenv/internal/registry"
)

// IsShimInvocation은 argv[0]이 shimenv 자신이 아닌 경우 true다.
// 그 경우 CLI가 아니라 shim 심링크를 통해 호출된 것이다.
func IsShimInvocation(argv0 string) bool {
	return filepath.Base(argv0) != registry.SelfName
}

// RunShim은 shim 호출을 처리한다. args는 argv 전체다. 성공하면 프로세스
// 이미지가 교체되므로 반환하지 않고, 실패 시 종료 코드를 반환한다.
func RunShim(args []string) ExitCode {
	home, err := project.HomeDir()
	if err != nil {
		logging.Errorf("%v", err)
		return ExitGeneral
	}

	name := filepath.Base(args[0])
	logging.Debugf("shim 호출: %s", name)

	engine := dispatch.New(home)
	res, err := engine.Resolve(args[0])
	if err != nil {
		logging.Errorf("%s: %v", name, err)
		return MapExitCode(err)
	}
	if err := engine.Exec(res, args[1:]); err != nil {
		logging.Errorf("%s: %v", name, err)
		return ExitGeneral
	}
	return ExitSuccess
}
