// Package envdiff는 setup 스크립트 실행 전후의 환경 차이를 표현하는
// 순수 데이터 모델이다. 직렬화는 store가, 수집은 runner가 담당한다.
package envdiff

import (
	"sort"
	"strings"

	"github.com/hbjs97/shimenv/internal/pathutil"
)

// PathVar는 탐색 경로를 담는 환경 변수 이름이다.
const PathVar = "PATH"

// Snapshot은 하나의 프로젝트에 대해 setup 스크립트가 만든 환경 델타다.
// Vars는 값이 바뀌었거나 새로 생긴 변수만 담는다. 스크립트가 제거한 변수는
// 추적하지 않는다.
type Snapshot struct {
	Vars           map[string]string `json:"vars"`
	NewPathEntries []string          `json:"new_path_entries"`
}

// Empty는 빈 스냅샷을 반환한다. 캐시가 없는 프로젝트의 dispatch에 쓰인다.
func Empty() *Snapshot {
	return &Snapshot{Vars: make(map[string]string)}
}

// Diff는 ambient 환경과 스크립트 실행 후 환경을 비교해 스냅샷을 만든다.
// 동일 입력에 대해 항상 동일한 결과를 낸다.
func Diff(ambient, produced map[string]string) *Snapshot {
	snap := Empty()
	for name, value := range produced {
		if prev, ok := ambient[name]; !ok || prev != value {
			snap.Vars[name] = value
		}
	}
	snap.NewPathEntries = newPathEntries(ambient[PathVar], produced[PathVar])
	return snap
}

// newPathEntries는 produced의 PATH에서 ambient에 없던 엔트리를
// produced의 상대 순서 그대로 걸러낸다.
func newPathEntries(ambientPath, producedPath string) []string {
	known := make(map[string]struct{})
	for _, entry := range pathutil.Split(ambientPath) {
		known[entry] = struct{}{}
	}

	var fresh []string
	seen := make(map[string]struct{})
	for _, entry := range pathutil.Split(producedPath) {
		if _, ok := known[entry]; ok {
			continue
		}
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		fresh = append(fresh, entry)
	}
	return fresh
}

// ParseEnviron은 os.Environ 형식의 "KEY=VALUE" 슬라이스를 맵으로 변환한다.
// '='가 없는 항목은 무시한다.
func ParseEnviron(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[name] = value
	}
	return env
}

// FormatEnviron은 맵을 이름 순으로 정렬된 "KEY=VALUE" 슬라이스로 변환한다.
func FormatEnviron(env map[string]string) []string {
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)

	environ := make([]string, 0, len(env))
	for _, name := range names {
		environ = append(environ, name+"="+env[name])
	}
	return environ
}
