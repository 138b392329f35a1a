package feed

import (
	"fmt"

	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
)

// NewErrSchemaUnavailable 피드 검증에 필요한 스키마를 로드하지 못한 경우의 에러를 생성합니다.
// 원인 에러의 타입(NotFound, ParsingFailed, System)을 그대로 유지합니다.
func NewErrSchemaUnavailable(name string, err error) error {
	return apperrors.Wrap(err, apperrors.UnderlyingType(err), fmt.Sprintf("피드 검증용 스키마를 사용할 수 없습니다: '%s'", name))
}

// NewErrRenderFailed 피드 문서를 XML로 렌더링하지 못한 경우의 에러를 생성합니다.
func NewErrRenderFailed(err error) error {
	return apperrors.Wrap(err, apperrors.ExecutionFailed, "피드 문서를 XML로 변환하는데 실패했습니다")
}
