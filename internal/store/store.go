// Package store는 프로젝트별 Environment Snapshot을 영속화한다.
// 쓰기는 같은 디렉토리의 임시 파일에 기록한 뒤 rename으로 커밋하므로,
// 동시 읽기는 이전 스냅샷 전체 또는 새 스냅샷 전체만 관찰한다.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hbjs97/shimenv/internal/envdiff"
)

// InterruptedExitCode는 쓰기 도중 인터럽트될 때의 종료 코드다.
const InterruptedExitCode = 130

// ErrNotFound는 해당 프로젝트의 스냅샷이 아직 없을 때 반환된다.
// 정상적인 상태이며 에러로 보고하지 않는다 (빈 스냅샷으로 dispatch).
var ErrNotFound = errors.New("캐시된 스냅샷 없음")

// ErrCacheCorrupt는 스냅샷 파일이 존재하지만 역직렬화에 실패할 때 반환된다.
// ErrNotFound와 구분해 표면화한다. 조용히 버리면 포맷 마이그레이션 버그를
// 가릴 수 있다.
var ErrCacheCorrupt = errors.New("스냅샷 파일이 손상됨")

// Store는 <home>/envs/ 아래에 캐시 키당 파일 하나를 관리한다.
type Store struct {
	dir string
}

// New는 주어진 shimenv 홈에 대한 Store를 생성한다.
func New(envsDir string) *Store {
	return &Store{dir: envsDir}
}

// Path는 키에 해당하는 스냅샷 파일 경로를 반환한다.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key)
}

// Read는 커밋된 스냅샷을 역직렬화한다. 파일 없음은 ErrNotFound,
// 파싱 실패는 ErrCacheCorrupt로 구분된다.
func (s *Store) Read(key string) (*envdiff.Snapshot, error) {
	data, err := os.ReadFile(s.Path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store.Read: %w", err)
	}

	var snap envdiff.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("store.Read: %s: %w", s.Path(key), ErrCacheCorrupt)
	}
	if snap.Vars == nil {
		snap.Vars = make(map[string]string)
	}
	return &snap, nil
}

// Write는 스냅샷을 직렬화해 원자적으로 커밋한다. rename이 유일한 가시화
// 단계다. 쓰기 동안 인터럽트 시그널을 받으면 임시 파일을 제거하고 130으로
// 종료한다.
func (s *Store) Write(key string, snap *envdiff.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("store.Write: 캐시 디렉토리 생성 실패: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store.Write: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+".tmp-*")
	if err != nil {
		return fmt.Errorf("store.Write: 임시 파일 생성 실패: %w", err)
	}
	tmpName := tmp.Name()

	stop := cleanupOnInterrupt(tmpName)
	defer stop()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store.Write: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store.Write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store.Write: %w", err)
	}

	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store.Write: %w", err)
	}
	return nil
}

// Remove는 키의 스냅샷 파일을 제거한다. 없는 키도 성공으로 처리한다.
func (s *Store) Remove(key string) error {
	err := os.Remove(s.Path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store.Remove: %w", err)
	}
	return nil
}

// cleanupOnInterrupt는 쓰기 구간 동안만 시그널 핸들러를 등록해 임시 파일을
// 정리한다. 반환된 함수로 해제한다.
func cleanupOnInterrupt(tmpName string) func() {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigs:
			os.Remove(tmpName)
			os.Exit(InterruptedExitCode)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
