// Package maputil 동적으로 해석된 맵 데이터를 구조체로 변환하는 기능을 제공합니다.
package maputil

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode 입력 데이터를 타입 T의 구조체로 변환하여 반환합니다.
//
// 기본 동작:
//   - json 태그를 기준으로 필드를 매핑합니다.
//   - 유연한 타입 변환을 허용합니다. ("true" -> true, "3" -> 3, json.Number -> int)
//   - 구조체에 없는 키는 무시합니다. 엄격한 검증이 필요하면 WithErrorUnused(true)를 사용하십시오.
//   - encoding.TextUnmarshaler를 구현한 필드는 문자열에서 직접 변환합니다.
func Decode[T any](input any, opts ...Option) (*T, error) {
	cfg := &decodingConfig{
		tagName:          "json",
		weaklyTypedInput: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	hooks := append(append([]mapstructure.DecodeHookFunc{}, cfg.extraHooks...),
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)

	output := new(T)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          cfg.tagName,
		WeaklyTypedInput: cfg.weaklyTypedInput,
		ErrorUnused:      cfg.errorUnused,
		Metadata:         cfg.metadata,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(hooks...),
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("입력 데이터를 %T(으)로 디코딩하는 데 실패했습니다: %w", output, err)
	}

	return output, nil
}

type decodingConfig struct {
	tagName          string
	weaklyTypedInput bool
	errorUnused      bool
	metadata         *mapstructure.Metadata
	extraHooks       []mapstructure.DecodeHookFunc
}

// Option 디코딩 동작을 조정하는 함수형 옵션입니다.
type Option func(*decodingConfig)

// WithTagName 필드 매핑에 사용할 태그 이름을 지정합니다. (기본값: "json")
func WithTagName(tagName string) Option {
	return func(c *decodingConfig) {
		c.tagName = tagName
	}
}

// WithWeaklyTypedInput 타입이 달라도 변환 가능한 값을 자동으로 변환할지 설정합니다. (기본값: true)
func WithWeaklyTypedInput(enable bool) Option {
	return func(c *decodingConfig) {
		c.weaklyTypedInput = enable
	}
}

// WithErrorUnused 구조체에 없는 키가 입력에 있으면 에러를 반환하도록 설정합니다. (기본값: false)
func WithErrorUnused(enable bool) Option {
	return func(c *decodingConfig) {
		c.errorUnused = enable
	}
}

// WithMetadata 디코딩에 사용된 키와 사용되지 않은 키를 md에 수집합니다.
func WithMetadata(md *mapstructure.Metadata) Option {
	return func(c *decodingConfig) {
		c.metadata = md
	}
}

// WithDecodeHook 기본 훅보다 먼저 실행될 변환 훅을 추가합니다.
func WithDecodeHook(hooks ...mapstructure.DecodeHookFunc) Option {
	return func(c *decodingConfig) {
		c.extraHooks = append(c.extraHooks, hooks...)
	}
}
