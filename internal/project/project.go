// Package project는 현재 디렉토리에서 상위로 .envrc를 탐색해 프로젝트
// 컨텍스트를 해석하고, 캐시 키와 shimenv 홈 경로를 파생한다.
package project

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvrcName은 프로젝트 setup 스크립트의 파일 이름이다.
const EnvrcName = ".envrc"

// ErrNoEnvrc는 현재 또는 상위 디렉토리 어디에도 .envrc가 없을 때의
// sentinel error다.
var ErrNoEnvrc = errors.New("현재 또는 상위 디렉토리에서 .envrc를 찾을 수 없음")

// Context는 해석된 프로젝트 컨텍스트다.
type Context struct {
	// Root는 .envrc가 위치한 디렉토리다.
	Root string
	// EnvrcPath는 .envrc의 절대 경로다.
	EnvrcPath string
	// CacheKey는 EnvrcPath에서 파생한 캐시 파일 이름이다.
	CacheKey string
}

// Resolve는 startDir에서 상위로 올라가며 .envrc를 찾는다.
func Resolve(startDir string) (*Context, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("project.Resolve: %w", err)
	}

	for {
		envrcPath := filepath.Join(dir, EnvrcName)
		info, err := os.Stat(envrcPath)
		if err == nil && !info.IsDir() {
			return &Context{
				Root:      dir,
				EnvrcPath: envrcPath,
				CacheKey:  CacheKey(envrcPath),
			}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNoEnvrc
		}
		dir = parent
	}
}

// CacheKey는 .envrc 절대 경로의 해시를 반환한다. 서로 다른 프로젝트가
// 같은 키로 충돌하지 않도록 경로 전체를 해시한다.
func CacheKey(envrcPath string) string {
	sum := sha256.Sum256([]byte(envrcPath))
	return hex.EncodeToString(sum[:])
}

// HomeDir은 shimenv 설정 루트를 반환한다. SHIMENV_HOME이 우선하고,
// 없으면 ~/.shimenv다.
func HomeDir() (string, error) {
	if home := os.Getenv("SHIMENV_HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("project.HomeDir: SHIMENV_HOME 또는 HOME 확인 실패: %w", err)
	}
	return filepath.Join(home, ".shimenv"), nil
}

// BinDir은 shim이 설치되는 비공개 바이너리 디렉토리 경로다.
func BinDir(home string) string {
	return filepath.Join(home, "bin")
}

// EnvsDir은 스냅샷 캐시 디렉토리 경로다.
func EnvsDir(home string) string {
	return filepath.Join(home, "envs")
}
