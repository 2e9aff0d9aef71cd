package runner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// .envrc 출력 안에서 환경 덤프를 구분하는 마커. 마커 블록 밖의 줄은
// 스크립트 자신의 출력이므로 passthrough로 넘긴다.
const (
	markerBeforeBegin = "// BEGIN SHIMENV-BEFORE"
	markerBeforeEnd   = "// END SHIMENV-BEFORE"
	markerAfterBegin  = "// BEGIN SHIMENV-AFTER"
	markerAfterEnd    = "// END SHIMENV-AFTER"
)

type parseState int

const (
	statePreBefore parseState = iota
	stateInBefore
	statePreAfter
	stateInAfter
	stateEnd
)

// parseEnvLine은 env(1) 출력의 한 줄을 해석한다. '='가 없는 줄은 직전 변수
// 값의 연속(멀티라인 값)으로 이어붙인다.
func parseEnvLine(line string, env map[string]string, prevName *string) {
	name, value, ok := strings.Cut(line, "=")
	if !ok {
		if *prevName != "" {
			env[*prevName] += "\n" + line
		}
		return
	}
	env[name] = value
	*prevName = name
}

// parseEnvDiff는 서브프로세스 stdout에서 BEFORE/AFTER 환경 블록을 추출한다.
// 마커 밖의 줄마다 passthrough를 호출한다.
func parseEnvDiff(r io.Reader, passthrough func(line string) error) (before, after map[string]string, err error) {
	before = make(map[string]string)
	after = make(map[string]string)

	state := statePreBefore
	var prevName string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case state == statePreBefore && line == markerBeforeBegin:
			prevName = ""
			state = stateInBefore
		case state == stateInBefore && line == markerBeforeEnd:
			prevName = ""
			state = statePreAfter
		case state == statePreAfter && line == markerAfterBegin:
			prevName = ""
			state = stateInAfter
		case state == stateInAfter && line == markerAfterEnd:
			prevName = ""
			state = stateEnd
		case state == stateInBefore:
			parseEnvLine(line, before, &prevName)
		case state == stateInAfter:
			parseEnvLine(line, after, &prevName)
		default:
			if err := passthrough(line); err != nil {
				return nil, nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("runner.parseEnvDiff: %w", err)
	}
	if state != stateEnd {
		return nil, nil, fmt.Errorf("runner.parseEnvDiff: 환경 덤프 마커를 찾지 못함: %w", ErrScript)
	}
	return before, after, nil
}
