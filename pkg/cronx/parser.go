// Package cronx 피드 스케줄러와 설정 검증이 공유하는 Cron 표현식 파서를 제공합니다.
package cronx

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 단위를 포함하는 6필드 Cron 표현식 파서를 반환합니다.
//
// 필드 순서는 [초] [분] [시] [일] [월] [요일]이며, @daily, @every 1h 같은 Descriptor도 허용합니다.
// 표준 5필드 형식은 지원하지 않습니다.
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate 표현식을 StandardParser로 해석할 수 있는지 검사합니다.
func Validate(spec string) error {
	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("Cron 표현식 파싱 실패(spec=%q): %w", spec, err)
	}
	return nil
}
