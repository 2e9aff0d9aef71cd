// Package dispatch는 shim 실행 경로의 코어다. 호출 이름으로 실제 타깃을
// 해석하고, 캐시된 스냅샷을 물려받은 환경 위에 덮은 뒤 프로세스 이미지를
// 교체한다.
package dispatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hbjs97/shimenv/internal/envdiff"
	"github.com/hbjs97/shimenv/internal/logging"
	"github.com/hbjs97/shimenv/internal/pathutil"
	"github.com/hbjs97/shimenv/internal/project"
	"github.com/hbjs97/shimenv/internal/runner"
	"github.com/hbjs97/shimenv/internal/store"
	"golang.org/x/sys/unix"
)

// ErrCommandNotFound는 bin 디렉토리를 제외한 PATH에서 실제 타깃을 찾지
// 못했을 때의 sentinel error다.
var ErrCommandNotFound = errors.New("명령을 찾을 수 없음")

// Engine은 Dispatch Engine이다. Home은 설정 루트, Store는 스냅샷 캐시다.
type Engine struct {
	Home  string
	Store *store.Store
}

// New는 주어진 홈에 대한 Engine을 생성한다.
func New(home string) *Engine {
	return &Engine{
		Home:  home,
		Store: store.New(project.EnvsDir(home)),
	}
}

// Resolution은 실행 직전까지 해석된 dispatch 결과다.
type Resolution struct {
	// Path는 실제로 실행될 타깃의 경로다.
	Path string
	// Environ은 병합이 끝난 전체 환경이다 (정렬된 KEY=VALUE).
	Environ []string
	// Vars는 적용된 스냅샷 변수다 (진단용).
	Vars map[string]string
}

// Resolve는 호출 이름에 대한 스냅샷 로드(없으면 빈 스냅샷), 재진입 가드,
// PATH에서 bin 디렉토리 제거, 실제 타깃 해석, 환경 병합까지 수행한다.
// 실행은 하지 않는다.
func (e *Engine) Resolve(invocationName string) (*Resolution, error) {
	name := filepath.Base(invocationName)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("dispatch.Resolve: 작업 디렉토리 확인 실패: %w", err)
	}

	env := envdiff.ParseEnviron(os.Environ())
	snap := envdiff.Empty()

	if os.Getenv(runner.ReentrancyMarker) == "1" {
		// .envrc 평가 중이거나 사용자가 shim을 껐다. 커밋 전의 스냅샷이
		// 새어 들어가지 않도록 물려받은 환경만 사용한다.
		logging.Debugf("%s=1, 스냅샷을 적용하지 않음", runner.ReentrancyMarker)
	} else {
		snap, err = e.loadSnapshot(cwd)
		if err != nil {
			return nil, err
		}
	}

	for key, value := range snap.Vars {
		env[key] = value
	}

	binDir := project.BinDir(e.Home)
	stripped, removed := pathutil.StripDir(env[envdiff.PathVar], binDir)
	for _, entry := range removed {
		logging.Debugf("PATH에서 자기 디렉토리 제거: %s", entry)
	}
	env[envdiff.PathVar] = stripped

	target, err := pathutil.LookPath(name, stripped, cwd)
	if err != nil {
		return nil, fmt.Errorf("dispatch.Resolve: %s: %w", name, ErrCommandNotFound)
	}

	return &Resolution{
		Path:    target,
		Environ: envdiff.FormatEnviron(env),
		Vars:    snap.Vars,
	}, nil
}

// Exec은 해석된 타깃으로 프로세스 이미지를 교체한다. 성공하면 돌아오지
// 않는다. 인자와 표준 스트림은 그대로 이어지고, 타깃의 종료 코드가 곧
// 호출자가 보는 종료 코드가 된다.
func (e *Engine) Exec(res *Resolution, args []string) error {
	argv := append([]string{res.Path}, args...)
	logging.Debugf("execve %s", res.Path)
	if err := unix.Exec(res.Path, argv, res.Environ); err != nil {
		return fmt.Errorf("dispatch.Exec: %s: %w", res.Path, err)
	}
	return nil
}

// loadSnapshot은 cwd의 프로젝트 스냅샷을 읽는다. 프로젝트나 캐시가 없으면
// 빈 스냅샷이다. shim은 환경 데이터 없이도 실제 바이너리로 dispatch한다.
// 손상된 캐시는 NotFound와 구분해 그대로 표면화한다.
func (e *Engine) loadSnapshot(cwd string) (*envdiff.Snapshot, error) {
	proj, err := project.Resolve(cwd)
	if errors.Is(err, project.ErrNoEnvrc) {
		return envdiff.Empty(), nil
	}
	if err != nil {
		return nil, err
	}
	logging.Debugf("프로젝트 %s 로드", proj.EnvrcPath)

	snap, err := e.Store.Read(proj.CacheKey)
	if errors.Is(err, store.ErrNotFound) {
		return envdiff.Empty(), nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}
