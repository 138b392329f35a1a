package schema

import (
	"fmt"

	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
)

// NewErrSchemaNotFound 스키마 파일(또는 포함된 파일)이 존재하지 않는 경우의 에러를 생성합니다.
func NewErrSchemaNotFound(name string, err error) error {
	return apperrors.Wrap(err, apperrors.NotFound, fmt.Sprintf("스키마 파일을 찾을 수 없습니다: '%s'", name))
}

// NewErrSchemaReadFailed 스키마 파일을 읽는 중 I/O 오류가 발생한 경우의 에러를 생성합니다.
func NewErrSchemaReadFailed(name string, err error) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("스키마 파일을 읽는 중 오류가 발생했습니다: '%s'", name))
}

// NewErrSchemaParseFailed 스키마 파일의 XML 문법 또는 XSD 구조가 올바르지 않은 경우의 에러를 생성합니다.
func NewErrSchemaParseFailed(name string, err error) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("스키마 파일을 해석할 수 없습니다: '%s'", name))
}

// newInvalidSchema XSD 구조 오류를 설명하는 원인 에러를 생성합니다.
func newInvalidSchema(format string, args ...any) error {
	return apperrors.Newf(apperrors.ParsingFailed, format, args...)
}

// NewErrDocumentReadFailed 검증 대상 문서를 읽는 중 I/O 오류가 발생한 경우의 에러를 생성합니다.
func NewErrDocumentReadFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "검증 대상 문서를 읽는 중 오류가 발생했습니다")
}
