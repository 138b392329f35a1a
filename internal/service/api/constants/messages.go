package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	// ------------------------------------------------------------------------------------------------
	// 일반 HTTP 에러 (상태 코드 순)
	// ------------------------------------------------------------------------------------------------

	// 400 Bad Request
	ErrMsgBadRequest               = "잘못된 요청입니다"
	ErrMsgBadRequestEmptyBody      = "요청 본문이 비어있습니다"
	ErrMsgBadRequestBodyReadFailed = "요청 본문을 읽을 수 없습니다"
	ErrMsgBadRequestInvalidParam   = "'%s' 파라미터의 값이 올바르지 않습니다: '%s'"

	// 401 Unauthorized
	ErrMsgUnauthorizedInvalidAppKey = "app_key가 유효하지 않습니다"

	// 404 Not Found
	ErrMsgNotFound = "요청한 리소스를 찾을 수 없습니다"

	// 413 Request Entity Too Large
	ErrMsgRequestEntityTooLarge = "요청 본문이 너무 큽니다"

	// 415 Unsupported Media Type
	ErrMsgUnsupportedMediaType = "지원하지 않는 미디어 타입입니다"

	// 422 Unprocessable Entity
	ErrMsgUnprocessableCatalog = "카탈로그를 처리할 수 없습니다: %s"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"

	// 500 Internal Server Error
	ErrMsgInternalServer = "내부 서버 오류가 발생했습니다"

	// 503 Service Unavailable
	ErrMsgServiceUnavailable = "스키마를 사용할 수 없어 피드를 검증하지 못했습니다. 관리자에게 문의해 주세요"
	ErrMsgRequestTimeout     = "요청 처리 시간이 초과되었습니다. 잠시 후 다시 시도해주세요"

	// ------------------------------------------------------------------------------------------------
	// 인증 에러
	// ------------------------------------------------------------------------------------------------

	// ErrMsgAuthAppKeyRequired app_key 누락 (X-App-Key 헤더 또는 app_key 쿼리 파라미터)
	ErrMsgAuthAppKeyRequired = "app_key는 필수입니다 (X-App-Key 헤더 또는 app_key 쿼리 파라미터)"
)
