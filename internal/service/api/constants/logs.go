package constants

// 내부 로깅을 위한 메시지 상수입니다.
const (
	// ------------------------------------------------------------------------------------------------
	// 서비스 생명주기
	// ------------------------------------------------------------------------------------------------

	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"
	LogMsgServiceUnexpectedExit = "API 서비스가 예기치 않게 종료되었습니다"

	LogMsgServiceHTTPServerStarting      = "API 서비스 > http 서버 시작"
	LogMsgServiceHTTPServerStopped       = "API 서비스 > http 서버 중지됨"
	LogMsgServiceHTTPServerShutdownError = "API 서비스 > http 서버 종료 중 오류 발생"
	LogMsgServiceHTTPServerFatalError    = "API 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다."

	// ------------------------------------------------------------------------------------------------
	// 핸들러
	// ------------------------------------------------------------------------------------------------

	LogMsgHealthCheck       = "헬스체크 요청"
	LogMsgVersionInfo       = "버전 정보 요청"
	LogMsgFeedGenerated     = "피드 생성 요청 처리 완료"
	LogMsgFeedValidated     = "피드 검증 요청 처리 완료"
	LogMsgFeedRequestFailed = "피드 요청 처리 실패"

	// ------------------------------------------------------------------------------------------------
	// 미들웨어 및 에러 핸들러
	// ------------------------------------------------------------------------------------------------

	LogMsgHTTPRequest            = "HTTP 요청"
	LogMsgHTTP4xxClientError     = "클라이언트 요청 오류"
	LogMsgHTTP5xxServerError     = "서버 내부 오류"
	LogMsgPanicRecovered         = "PANIC RECOVERED"
	LogMsgRateLimitExceeded      = "Rate limit 초과"
	LogMsgUnsupportedContentType = "지원하지 않는 Content-Type 요청"
	LogMsgAuthFailed             = "인증 실패: app_key가 일치하지 않습니다"
)
