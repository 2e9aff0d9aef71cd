// Package registry는 비공개 바이너리 디렉토리의 shim 심볼릭 링크를 관리한다.
// shim은 shimenv 실행 파일을 가리키는 명령 이름의 심링크이며, 존재 여부가
// 곧 등록 상태다 (별도 메타데이터 없음).
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hbjs97/shimenv/internal/envdiff"
	"github.com/hbjs97/shimenv/internal/pathutil"
)

// SelfName은 shim 대상에서 항상 제외되는 도구 자신의 이름이다.
const SelfName = "shimenv"

// ErrShadowed는 같은 이름의 실제 실행 파일이 bin 디렉토리보다 PATH 앞쪽에
// 있어 shim이 무의미할 때의 sentinel error다.
var ErrShadowed = errors.New("같은 이름의 실행 파일에 가려짐")

// Registry는 bin 디렉토리와 shim이 가리킬 자기 실행 파일 경로를 갖는다.
type Registry struct {
	binDir   string
	selfPath string
}

// New는 Registry를 생성한다. selfPath는 현재 shimenv 실행 파일의 절대 경로다.
func New(binDir, selfPath string) *Registry {
	return &Registry{binDir: binDir, selfPath: selfPath}
}

// BinDir은 비공개 바이너리 디렉토리 경로를 반환한다.
func (r *Registry) BinDir() string {
	return r.binDir
}

// List는 설치된 shim 이름을 정렬해 반환한다. 자기 이름은 제외한다.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.binDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("registry.List: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Name() == SelfName {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Result는 Create/Remove의 집계 결과다.
type Result struct {
	// Created/Removed는 새로 만들거나 지운 shim 수, Existing은 이미 있던 수다.
	Created  int
	Removed  int
	Existing int
	// SkippedSelf는 자기 이름이 요청에 포함되어 건너뛰었는지 여부다.
	SkippedSelf bool
	// Failed는 이름별 실패 목록이다. 일부가 실패해도 나머지는 계속 진행한다.
	Failed []NameError
}

// NameError는 하나의 이름에 대한 실패다.
type NameError struct {
	Name string
	Err  error
}

// Create는 각 이름에 대해 shim 심링크를 만든다. 자기 이름은 경고만 남기고
// 건너뛰며, shadow 검사에 걸린 이름은 해당 이름만 실패로 기록하고 계속한다.
// pathValue는 shadow 검사에 사용할 호출자의 PATH 값이다.
func (r *Registry) Create(names []string, pathValue, cwd string) (Result, error) {
	var res Result

	if err := os.MkdirAll(r.binDir, 0700); err != nil {
		return res, fmt.Errorf("registry.Create: bin 디렉토리 생성 실패: %w", err)
	}

	for _, name := range names {
		if name == SelfName {
			res.SkippedSelf = true
			continue
		}

		if err := r.checkShadowed(name, pathValue, cwd); err != nil {
			res.Failed = append(res.Failed, NameError{Name: name, Err: err})
			continue
		}

		shimPath := filepath.Join(r.binDir, name)
		if _, err := os.Lstat(shimPath); err == nil {
			res.Existing++
			continue
		}
		if err := os.Symlink(r.selfPath, shimPath); err != nil {
			res.Failed = append(res.Failed, NameError{
				Name: name,
				Err:  fmt.Errorf("registry.Create: %s 심링크 생성 실패: %w", shimPath, err),
			})
			continue
		}
		res.Created++
	}
	return res, nil
}

// Remove는 각 이름의 shim을 제거한다. 없는 shim 제거는 에러가 아니다.
func (r *Registry) Remove(names []string) (Result, error) {
	var res Result
	for _, name := range names {
		if name == SelfName {
			res.SkippedSelf = true
			continue
		}
		err := os.Remove(filepath.Join(r.binDir, name))
		if err == nil {
			res.Removed++
			continue
		}
		if !os.IsNotExist(err) {
			return res, fmt.Errorf("registry.Remove: %w", err)
		}
	}
	return res, nil
}

// checkShadowed는 shim 생성 전에 PATH를 순서대로 걸어, bin 디렉토리에
// 도달하기 전에 같은 이름의 실제 실행 파일이 나타나는지 검사한다.
// bin 디렉토리가 PATH에 아예 없으면 shim은 절대 해석되지 않으므로 그것도
// 에러다.
func (r *Registry) checkShadowed(name, pathValue, cwd string) error {
	for _, dir := range pathutil.Split(pathValue) {
		if dir == "" {
			continue
		}
		if pathutil.SameDir(dir, r.binDir) {
			return nil
		}
		abs := dir
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cwd, dir)
		}
		candidate := filepath.Join(abs, name)
		if pathutil.IsExecutable(candidate) {
			return fmt.Errorf("registry.Create: %s이(가) %s에 의해 가려짐: %w",
				filepath.Join(r.binDir, name), candidate, ErrShadowed)
		}
	}
	return fmt.Errorf("registry.Create: %s이(가) PATH에 없음: shim이 해석되지 않습니다", r.binDir)
}

// Missing는 스냅샷의 새 PATH 엔트리에서 발견되는 실행 파일 중 아직 shim이
// 없는 이름을 정렬해 반환한다. 인자 없는 shim 명령의 자동 발견과 reload 후
// 경고에 쓰인다.
func (r *Registry) Missing(snap *envdiff.Snapshot, root string) []string {
	seen := make(map[string]struct{})
	var missing []string

	for _, dir := range snap.NewPathEntries {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if _, dup := seen[name]; dup {
				continue
			}
			if !pathutil.IsExecutable(filepath.Join(dir, name)) {
				continue
			}
			if _, err := os.Lstat(filepath.Join(r.binDir, name)); err == nil {
				continue
			}
			seen[name] = struct{}{}
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
