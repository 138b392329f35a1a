package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

// 에러 타입 상수
const (
	// Unknown 알 수 없는 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 시스템 또는 인프라 오류 (파일 I/O 등)
	System

	// InvalidInput 잘못된 입력값 (설정값, 상품 데이터 등)
	InvalidInput

	// NotFound 리소스를 찾을 수 없음 (스키마 파일, 카탈로그 파일 등)
	NotFound

	// ParsingFailed 데이터 파싱 또는 형식 변환 실패 (XSD, JSON, XML)
	ParsingFailed

	// ExecutionFailed 피드 생성 등 작업 수행 실패
	ExecutionFailed
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	InvalidInput:    "InvalidInput",
	NotFound:        "NotFound",
	ParsingFailed:   "ParsingFailed",
	ExecutionFailed: "ExecutionFailed",
}

// String fmt.Stringer 인터페이스를 구현합니다.
func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
