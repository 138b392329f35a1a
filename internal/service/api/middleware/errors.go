package middleware

import (
	"fmt"

	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
	"github.com/darkkaiser/mws-feed/internal/service/api/constants"
	"github.com/darkkaiser/mws-feed/internal/service/api/httputil"
)

var (
	// ErrAppKeyRequired API 호출 자격 증명인 App Key가 누락되었을 때 반환하는 에러입니다.
	// X-App-Key 헤더 또는 app_key 쿼리 파라미터를 통해 전달되어야 합니다.
	ErrAppKeyRequired = httputil.NewUnauthorizedError(constants.ErrMsgAuthAppKeyRequired)

	// ErrInvalidAppKey 전달된 App Key가 설정된 값과 일치하지 않을 때 반환하는 에러입니다.
	ErrInvalidAppKey = httputil.NewUnauthorizedError(constants.ErrMsgUnauthorizedInvalidAppKey)

	// ErrRateLimitExceeded 허용된 요청 빈도를 초과한 클라이언트에게 반환할 표준 HTTP 429(Too Many Requests) 에러입니다.
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

	// ErrUnsupportedMediaType 클라이언트가 보낸 Content-Type을 서버가 지원하지 않을 때 반환할 표준 HTTP 415 에러입니다.
	ErrUnsupportedMediaType = httputil.NewUnsupportedMediaTypeError(constants.ErrMsgUnsupportedMediaType)
)

// NewErrPanicRecovered 캡처된 패닉 값을 내부 시스템 오류로 래핑하여 새로운 에러를 생성합니다.
func NewErrPanicRecovered(r any) error {
	return apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
}
