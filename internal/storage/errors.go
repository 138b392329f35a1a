package storage

import (
	"fmt"

	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
)

var (
	// ErrPathTraversalDetected 피드 파일 경로가 저장 디렉토리를 벗어나는 경우의 에러입니다.
	ErrPathTraversalDetected = apperrors.New(apperrors.Internal, "보안 정책 위반: 저장 디렉토리 밖의 경로에는 피드를 저장할 수 없습니다")

	// ErrEmptyMerchantID 판매자 ID 없이 피드 저장을 요청한 경우의 에러입니다.
	ErrEmptyMerchantID = apperrors.New(apperrors.InvalidInput, "피드를 저장하려면 판매자 ID가 필요합니다")
)

// NewErrPathResolutionFailed 파일 경로를 해석하지 못한 경우의 에러를 생성합니다.
func NewErrPathResolutionFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "보안 검증 실패: 파일 경로를 해석할 수 없습니다")
}

// NewErrAbsPathConversionFailed 저장 디렉토리를 절대 경로로 변환하지 못한 경우의 에러를 생성합니다.
func NewErrAbsPathConversionFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "피드 저장소 초기화 실패: 절대 경로 변환 불가")
}

// NewErrDirectoryAccessFailed 저장 디렉토리를 만들거나 접근하지 못한 경우의 에러를 생성합니다.
func NewErrDirectoryAccessFailed(err error, dir string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("피드 저장소 초기화 실패: 디렉토리 접근 불가 (%s)", dir))
}

// NewErrTempFileCreationFailed 임시 파일을 만들지 못한 경우의 에러를 생성합니다.
func NewErrTempFileCreationFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "피드 저장 실패: 임시 파일 생성 중 오류가 발생했습니다")
}

// NewErrFileWriteFailed 파일 쓰기에 실패한 경우의 에러를 생성합니다.
func NewErrFileWriteFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "피드 저장 실패: 파일 쓰기 중 오류가 발생했습니다")
}

// NewErrFileSyncFailed 디스크 동기화에 실패한 경우의 에러를 생성합니다.
func NewErrFileSyncFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "피드 저장 실패: 디스크 동기화 중 오류가 발생했습니다")
}

// NewErrFileCloseFailed 파일 닫기에 실패한 경우의 에러를 생성합니다.
func NewErrFileCloseFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "피드 저장 실패: 파일 닫기 중 오류가 발생했습니다")
}

// NewErrFileRenameFailed 임시 파일을 최종 이름으로 바꾸지 못한 경우의 에러를 생성합니다.
func NewErrFileRenameFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "피드 저장 실패: 파일 이름 변경 중 오류가 발생했습니다")
}
