package constants

import "time"

// 보안 및 서버 설정 기본값 상수입니다.
const (
	// DefaultMaxBodySize 요청 본문의 최대 크기 (카탈로그 JSON 문서 기준 8MB)
	DefaultMaxBodySize = "8M"

	// DefaultReadTimeout 요청 본문 읽기 최대 대기 시간
	DefaultReadTimeout = 30 * time.Second

	// DefaultReadHeaderTimeout HTTP 헤더 읽기 최대 대기 시간 (Slowloris 공격 방지)
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 최대 대기 시간
	DefaultWriteTimeout = 90 * time.Second

	// DefaultHSTSMaxAge TLS 사용 시 Strict-Transport-Security 헤더의 max-age (1년, 초 단위)
	DefaultHSTSMaxAge = 31536000

	// DefaultIdleTimeout Keep-Alive 연결의 최대 유휴 시간
	DefaultIdleTimeout = 120 * time.Second

	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간
	DefaultRequestTimeout = 60 * time.Second
)

// SensitiveQueryParams 로그 기록 시 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	AppKeyQuery,
	"api_key",
	"password",
	"token",
	"secret",
}
