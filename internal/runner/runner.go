// Package runner는 프로젝트의 .envrc를 외부 인터프리터로 한 번 실행해
// 환경 델타 스냅샷을 수집한다. 캐시 쓰기는 호출자의 몫이다. 실행이 실패하면
// 결과를 버리기만 하면 되고 부수 효과가 남지 않는다.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hbjs97/shimenv/internal/cmdexec"
	"github.com/hbjs97/shimenv/internal/envdiff"
	"github.com/hbjs97/shimenv/internal/project"
)

// ReentrancyMarker는 .envrc 평가 중임을 하위 프로세스 전체에 알리는 환경
// 변수다. Dispatch Engine은 이 변수가 "1"이면 캐시를 읽지 않고 물려받은
// 환경 그대로 dispatch한다. .envrc가 shim된 명령을 호출해도 평가가
// 재귀하거나 이전 스냅샷이 새어 들어가지 않는다.
const ReentrancyMarker = "SHIMENV_NO_SHIM"

// ErrScript는 .envrc 서브프로세스가 비정상 종료했거나 출력 파싱에 실패했을
// 때의 sentinel error다.
var ErrScript = errors.New("setup 스크립트 실행 실패")

// Runner는 Setup-Script Runner다.
type Runner struct {
	// Commander는 인터프리터 서브프로세스를 실행한다.
	Commander cmdexec.Commander
	// Interpreter는 .envrc를 평가할 명령이다 (기본 bash).
	Interpreter string
	// Prelude는 .envrc 앞에 주입되는 코드다.
	Prelude string
	// Stdin/Passthrough는 서브프로세스 입력과 스크립트 출력 중계 대상이다.
	Stdin       io.Reader
	Passthrough io.Writer
}

// Run은 proj의 .envrc를 평가해 환경 델타 스냅샷을 반환한다.
func (r *Runner) Run(ctx context.Context, proj *project.Context) (*envdiff.Snapshot, error) {
	script, err := r.writeTempScript(proj)
	if err != nil {
		return nil, err
	}
	defer os.Remove(script)

	stop := removeOnInterrupt(script)
	defer stop()

	pr, pw := io.Pipe()
	runErr := make(chan error, 1)
	go func() {
		err := r.Commander.Run(ctx, cmdexec.Spec{
			Name:   r.Interpreter,
			Args:   []string{script},
			Dir:    proj.Root,
			Env:    append(os.Environ(), ReentrancyMarker+"=1"),
			Stdin:  r.Stdin,
			Stdout: pw,
			Stderr: os.Stderr,
		})
		pw.Close()
		runErr <- err
	}()

	before, after, parseErr := parseEnvDiff(pr, func(line string) error {
		if r.Passthrough == nil {
			return nil
		}
		_, err := fmt.Fprintln(r.Passthrough, line)
		return err
	})
	// 파서가 먼저 실패해도 서브프로세스가 pipe에 막혀 있지 않도록 닫는다.
	pr.Close()

	if err := <-runErr; err != nil {
		return nil, fmt.Errorf("runner.Run: .envrc 비정상 종료 (%v): %w", err, ErrScript)
	}
	if parseErr != nil {
		return nil, parseErr
	}

	return envdiff.Diff(before, after), nil
}

// writeTempScript는 .envrc를 마커와 prelude로 감싼 임시 스크립트를
// 프로젝트 루트에 만든다.
func (r *Runner) writeTempScript(proj *project.Context) (string, error) {
	envrc, err := os.ReadFile(proj.EnvrcPath)
	if err != nil {
		return "", fmt.Errorf("runner.Run: %s 읽기 실패: %w", proj.EnvrcPath, err)
	}

	tmp, err := os.CreateTemp(proj.Root, ".shimenv-envrc-*")
	if err != nil {
		return "", fmt.Errorf("runner.Run: 임시 스크립트 생성 실패: %w", err)
	}

	fail := func(err error) (string, error) {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("runner.Run: 임시 스크립트 쓰기 실패: %w", err)
	}

	if _, err := fmt.Fprintf(tmp, "echo '%s'\nenv\necho '%s'\n%s\n",
		markerBeforeBegin, markerBeforeEnd, r.Prelude); err != nil {
		return fail(err)
	}
	if _, err := tmp.Write(envrc); err != nil {
		return fail(err)
	}
	if _, err := fmt.Fprintf(tmp, "\necho '%s'\nenv\necho '%s'\n",
		markerAfterBegin, markerAfterEnd); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	return tmp.Name(), nil
}

// removeOnInterrupt는 .envrc 평가 동안 인터럽트를 받으면 임시 스크립트를
// 지우고 130으로 종료한다.
func removeOnInterrupt(path string) func() {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigs:
			os.Remove(path)
			os.Exit(130)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
