package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Confirmer는 대화형 확인 프롬프트 추상화다. 테스트는 고정 응답을 주입한다.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// HuhConfirmer는 charmbracelet/huh 기반 구현이다.
type HuhConfirmer struct{}

func (HuhConfirmer) Confirm(prompt string) (bool, error) {
	confirmed := true
	if err := huh.NewConfirm().
		Title(prompt).
		Affirmative("예").
		Negative("아니오").
		Value(&confirmed).
		Run(); err != nil {
		return false, fmt.Errorf("cli.Confirm: %w", err)
	}
	return confirmed, nil
}
