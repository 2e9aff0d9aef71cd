package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultPrelude는 .envrc 실행 전에 주입되는 기본 코드다. direnv stdlib를
// 불러와 direnv용으로 작성된 .envrc가 그대로 동작하게 한다.
const DefaultPrelude = `eval "$(direnv stdlib)"`

// Config는 <home>/config.toml의 최상위 구조체다. 파일이 없으면 전부 기본값이다.
type Config struct {
	Version      int     `toml:"version"`
	Interpreter  string  `toml:"interpreter"`
	Prelude      *string `toml:"prelude"`
	ShimWarnings *bool   `toml:"shim_warnings"`
}

// Load는 config.toml을 파싱해 Config를 반환한다. 파일 없음은 기본 설정으로
// graceful하게 처리하고, 파싱 실패만 에러다.
func Load(home string) (*Config, error) {
	path := filepath.Join(home, "config.toml")

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return &cfg, nil
		}
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// EffectivePrelude는 SHIMENV_PRELUDE 환경 변수가 설정 파일보다 우선하는
// 최종 prelude 값을 반환한다.
func (c *Config) EffectivePrelude() string {
	if env, ok := os.LookupEnv("SHIMENV_PRELUDE"); ok {
		return env
	}
	return *c.Prelude
}

// IsShimWarnings는 미설치 shim 경고의 활성 여부를 반환한다.
// SHIMENV_NO_SHIM_WARNINGS=1이 설정보다 우선한다.
func (c *Config) IsShimWarnings() bool {
	if os.Getenv("SHIMENV_NO_SHIM_WARNINGS") == "1" {
		return false
	}
	return *c.ShimWarnings
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Interpreter == "" {
		c.Interpreter = "bash"
	}
	if c.Prelude == nil {
		p := DefaultPrelude
		c.Prelude = &p
	}
	if c.ShimWarnings == nil {
		t := true
		c.ShimWarnings = &t
	}
}
