// Package grid는 명령 이름 목록을 터미널 폭에 맞춘 그리드로 출력한다.
// 폭을 알 수 없으면 한 줄에 하나씩 출력한다.
package grid

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const gutter = 2

// Print는 items를 w의 터미널 폭에 맞춰 출력한다.
func Print(w io.Writer, items []string) {
	width := terminalWidth(w)
	Fprint(w, items, width)
}

// Fprint는 주어진 폭으로 그리드를 출력한다. 폭이 0 이하면 한 줄에 하나씩
// 출력한다.
func Fprint(w io.Writer, items []string, width int) {
	if len(items) == 0 {
		return
	}
	if width <= 0 {
		for _, item := range items {
			fmt.Fprintln(w, item)
		}
		return
	}

	cell := 0
	for _, item := range items {
		if n := lipgloss.Width(item); n > cell {
			cell = n
		}
	}

	columns := (width + gutter) / (cell + gutter)
	if columns < 1 {
		columns = 1
	}

	for i, item := range items {
		last := i == len(items)-1
		lineEnd := (i+1)%columns == 0
		if last || lineEnd {
			fmt.Fprintln(w, item)
			continue
		}
		fmt.Fprint(w, item, strings.Repeat(" ", cell-lipgloss.Width(item)+gutter))
	}
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
