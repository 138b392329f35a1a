// Package request v1 API의 요청 모델을 정의합니다.
package request

import "strconv"

// FeedQuery 피드 생성/검증 요청의 쿼리 파라미터
//
// 불리언 파라미터는 생략할 수 있으며, 생략하면 서버 설정값을 따릅니다.
type FeedQuery struct {
	PurgeAndReplace string `query:"purge_and_replace" validate:"omitempty,boolean" korean:"purge_and_replace"`
	Pretty          string `query:"pretty" validate:"omitempty,boolean" korean:"pretty"`
	Validate        string `query:"validate" validate:"omitempty,boolean" korean:"validate"`
	Save            string `query:"save" validate:"omitempty,boolean" korean:"save"`
	Format          string `query:"format" validate:"omitempty,oneof=xml json" korean:"format"`
}

// Bool 쿼리 값을 *bool로 변환합니다. 값이 없거나 해석할 수 없으면 nil을 반환합니다.
func Bool(raw string) *bool {
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
