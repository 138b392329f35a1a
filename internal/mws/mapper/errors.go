package mapper

import (
	"fmt"

	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
)

// NewErrInvalidFieldName 필드 이름이 XML 요소 이름으로 사용할 수 없는 경우의 에러를 생성합니다.
func NewErrInvalidFieldName(list, name string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 목록의 필드 이름이 올바르지 않습니다: '%s'", list, name))
}

// NewErrDuplicateField 같은 목록에 동일한 이름의 필드가 두 번 이상 정의된 경우의 에러를 생성합니다.
func NewErrDuplicateField(list, name string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 목록에 중복된 필드가 존재합니다: '%s'", list, name))
}

// NewErrUnknownField 어느 필드 목록에도 없는 이름을 참조한 경우의 에러를 생성합니다.
func NewErrUnknownField(name string) error {
	return apperrors.New(apperrors.NotFound, fmt.Sprintf("필드 목록에 존재하지 않는 필드입니다: '%s'", name))
}
