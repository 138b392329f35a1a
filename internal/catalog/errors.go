package catalog

import (
	"fmt"

	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
)

// NewErrCatalogNotFound 카탈로그 파일이 존재하지 않는 경우의 에러를 생성합니다.
func NewErrCatalogNotFound(path string, err error) error {
	return apperrors.Wrap(err, apperrors.NotFound, fmt.Sprintf("카탈로그 파일을 찾을 수 없습니다: '%s'", path))
}

// NewErrCatalogReadFailed 카탈로그 파일을 읽지 못한 경우의 에러를 생성합니다.
func NewErrCatalogReadFailed(path string, err error) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("카탈로그 파일을 읽는 중 오류가 발생했습니다: '%s'", path))
}

// NewErrUnsupportedEncoding 알 수 없는 문자 인코딩이 지정된 경우의 에러를 생성합니다.
func NewErrUnsupportedEncoding(encoding string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지원하지 않는 카탈로그 문자 인코딩입니다: '%s'", encoding))
}

// NewErrDecodeFailed 카탈로그 데이터를 UTF-8로 변환하지 못한 경우의 에러를 생성합니다.
func NewErrDecodeFailed(encoding string, err error) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("카탈로그 데이터를 '%s' 인코딩으로 해석할 수 없습니다", encoding))
}

// NewErrInvalidJSON 카탈로그가 올바른 JSON 문서가 아닌 경우의 에러를 생성합니다.
func NewErrInvalidJSON() error {
	return apperrors.New(apperrors.ParsingFailed, "카탈로그가 올바른 JSON 문서가 아닙니다")
}

// NewErrInvalidProducts 상품 목록이 배열이 아닌 경우의 에러를 생성합니다.
func NewErrInvalidProducts() error {
	return apperrors.New(apperrors.ParsingFailed, "카탈로그의 상품 목록(products)은 배열이어야 합니다")
}

// NewErrInvalidProduct 상품 항목이 객체가 아닌 경우의 에러를 생성합니다.
func NewErrInvalidProduct(index int) error {
	return apperrors.New(apperrors.ParsingFailed, fmt.Sprintf("%d번째 상품이 JSON 객체가 아닙니다", index+1))
}

// NewErrDuplicateAttribute 하나의 상품 안에서 서로 다른 키가 같은 속성 이름으로 정규화되는 경우의 에러를 생성합니다.
func NewErrDuplicateAttribute(index int, key string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%d번째 상품에 같은 속성('%s')을 가리키는 키가 중복되어 있습니다", index+1, key))
}

// NewErrInvalidHeader 카탈로그 헤더 값을 해석하지 못한 경우의 에러를 생성합니다.
func NewErrInvalidHeader(err error) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, "카탈로그 헤더를 해석하는데 실패했습니다")
}
