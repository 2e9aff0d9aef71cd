// Package logging은 SHIMENV_LOG로 제어되는 stderr 로거다.
// info는 태그 없이 메시지만 내보내고, 나머지 레벨은 "[WARN shimenv]" 형식의
// 태그를 붙인다. shim으로 실행될 때 어떤 소프트웨어가 낸 줄인지 구분하기
// 위한 것이다.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level은 로그 레벨이다.
type Level int

const (
	// LevelDebug는 shim dispatch 내부 동작까지 출력한다.
	LevelDebug Level = iota
	// LevelInfo는 기본 레벨이다.
	LevelInfo
	// LevelWarn는 경고 이상만 출력한다.
	LevelWarn
	// LevelError는 에러만 출력한다.
	LevelError
)

var (
	current Level     = LevelInfo
	out     io.Writer = os.Stderr

	debugTag = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Render("DEBUG")
	warnTag  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("WARN")
	errorTag = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("ERROR")
)

// Setup은 SHIMENV_LOG 값으로 레벨을 결정한다. 시작 시 1회만 호출한다.
// 알 수 없는 값이나 빈 값은 info로 처리한다.
func Setup(env string) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		current = LevelDebug
	case "warn", "warning":
		current = LevelWarn
	case "error":
		current = LevelError
	default:
		current = LevelInfo
	}
}

// SetOutput은 테스트에서 출력 대상을 바꾼다.
func SetOutput(w io.Writer) {
	out = w
}

// Debugf는 디버그 메시지를 출력한다.
func Debugf(format string, args ...any) {
	if current > LevelDebug {
		return
	}
	fmt.Fprintf(out, "[%s shimenv] %s\n", debugTag, fmt.Sprintf(format, args...))
}

// Infof는 태그 없이 메시지를 출력한다.
func Infof(format string, args ...any) {
	if current > LevelInfo {
		return
	}
	fmt.Fprintf(out, "%s\n", fmt.Sprintf(format, args...))
}

// Warnf는 경고 메시지를 출력한다.
func Warnf(format string, args ...any) {
	if current > LevelWarn {
		return
	}
	fmt.Fprintf(out, "[%s shimenv] %s\n", warnTag, fmt.Sprintf(format, args...))
}

// Errorf는 에러 메시지를 출력한다.
func Errorf(format string, args ...any) {
	fmt.Fprintf(out, "[%s shimenv] %s\n", errorTag, fmt.Sprintf(format, args...))
}
