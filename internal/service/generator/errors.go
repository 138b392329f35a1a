package generator

import (
	"fmt"

	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
)

var (
	// ErrMissingMerchantID 카탈로그와 설정 어디에도 판매자 ID가 없는 경우의 에러입니다.
	ErrMissingMerchantID = apperrors.New(apperrors.InvalidInput, "피드를 생성하려면 판매자 ID가 필요합니다 (카탈로그의 merchant_id 또는 설정의 merchant_id)")

	// ErrStoreNotConfigured 저장소 없이 피드 저장을 요청한 경우의 에러입니다.
	ErrStoreNotConfigured = apperrors.New(apperrors.Internal, "피드 저장소가 구성되지 않았습니다")

	// ErrNilCatalog 카탈로그 없이 피드 생성을 요청한 경우의 에러입니다.
	ErrNilCatalog = apperrors.New(apperrors.InvalidInput, "피드를 생성할 카탈로그가 없습니다")
)

// NewErrInvalidOperationType 알 수 없는 작업 유형이 지정된 경우의 에러를 생성합니다.
func NewErrInvalidOperationType(source, op string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 작업 유형이 올바르지 않습니다: '%s' (허용: Update, Delete, PartialUpdate)", source, op))
}

// NewErrMapperCreationFailed 설정으로부터 상품 매퍼를 만들지 못한 경우의 에러를 생성합니다.
func NewErrMapperCreationFailed(err error) error {
	return apperrors.Wrap(err, apperrors.UnderlyingType(err), "설정으로부터 상품 매퍼를 생성하는데 실패했습니다")
}

// NewErrSaveFailed 생성된 피드 문서를 저장하지 못한 경우의 에러를 생성합니다.
func NewErrSaveFailed(err error) error {
	return apperrors.Wrap(err, apperrors.UnderlyingType(err), "생성된 피드 문서를 저장하는데 실패했습니다")
}
