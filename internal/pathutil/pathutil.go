package pathutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound는 PATH에서 실행 파일을 찾지 못했을 때의 sentinel error다.
var ErrNotFound = errors.New("PATH에서 실행 파일을 찾을 수 없음")

// Split은 PATH 값을 플랫폼 구분자로 분해한다. 빈 값은 빈 슬라이스를 반환한다.
func Split(pathValue string) []string {
	if pathValue == "" {
		return nil
	}
	return filepath.SplitList(pathValue)
}

// Join은 디렉토리 목록을 PATH 값으로 결합한다.
func Join(entries []string) string {
	return strings.Join(entries, string(os.PathListSeparator))
}

// StripDir은 PATH 값에서 dir에 해당하는 엔트리를 전부 제거한다.
// 문자 그대로 같은 엔트리뿐 아니라 심볼릭 링크 해석 결과가 같은 엔트리도
// 제거한다 (중복 등재된 bin 디렉토리까지 걸러야 shim이 자기 자신을 다시
// 해석하지 않는다). 제거된 엔트리 목록도 함께 반환한다.
func StripDir(pathValue, dir string) (string, []string) {
	canonical := canonicalize(dir)

	var kept []string
	var removed []string
	for _, entry := range Split(pathValue) {
		if entry == dir || canonicalize(entry) == canonical {
			removed = append(removed, entry)
			continue
		}
		kept = append(kept, entry)
	}
	return Join(kept), removed
}

// IsExecutable은 path가 일반 파일이고 실행 비트가 켜져 있는지 확인한다.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0111 != 0
}

// LookPath는 PATH 값의 엔트리를 순서대로 검사해 name의 첫 번째 실행 파일을
// 찾는다. 상대 엔트리는 cwd 기준으로 해석한다. 없으면 ErrNotFound를 반환한다.
func LookPath(name, pathValue, cwd string) (string, error) {
	for _, dir := range Split(pathValue) {
		if dir == "" {
			continue
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		candidate := filepath.Join(dir, name)
		if IsExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// SameDir은 두 디렉토리가 심볼릭 링크 해석 후 동일한지 확인한다.
func SameDir(a, b string) bool {
	return a == b || canonicalize(a) == canonicalize(b)
}

func canonicalize(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
