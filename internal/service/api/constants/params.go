package constants

// URL 쿼리 파라미터 키 상수입니다.
const (
	// AppKeyQuery 애플리케이션 인증용 쿼리 파라미터 키
	AppKeyQuery = "app_key"

	// ------------------------------------------------------------------------------------------------
	// 피드 생성/검증
	// ------------------------------------------------------------------------------------------------

	QueryPurgeAndReplace = "purge_and_replace"
	QueryPretty          = "pretty"
	QueryValidate        = "validate"
	QuerySave            = "save"
	QueryFormat          = "format"
)

// 피드 생성 응답 형식입니다.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
)

// HTTP 헤더 키 상수입니다.
const (
	// XAppKey 애플리케이션 인증용 HTTP 헤더 키 (권장 방식)
	XAppKey = "X-App-Key"

	// XFeedMessages 생성된 피드 문서의 메시지 수
	XFeedMessages = "X-Feed-Messages"

	// XFeedViolations 생성된 피드 문서의 스키마 위반 수 (검증하지 않았으면 헤더 없음)
	XFeedViolations = "X-Feed-Violations"

	// XFeedPath 저장된 피드 문서의 경로
	XFeedPath = "X-Feed-Path"
)
