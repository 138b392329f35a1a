package constants

// 시스템 시작/구동 시 발생할 수 있는 크리티컬한 패닉 메시지 상수입니다.
const (
	// PanicMsgAppConfigRequired 패닉 메시지: AppConfig 필수
	PanicMsgAppConfigRequired = "AppConfig는 필수입니다"

	// PanicMsgGeneratorRequired 패닉 메시지: Generator 필수
	PanicMsgGeneratorRequired = "Generator는 필수입니다"

	// PanicMsgNotifierRequired 패닉 메시지: Notifier 필수
	PanicMsgNotifierRequired = "Notifier는 필수입니다"

	// PanicMsgAppKeyRequired 패닉 메시지: 인증 미들웨어의 App Key 필수
	PanicMsgAppKeyRequired = "Authentication: App Key는 비어 있을 수 없습니다"

	// PanicMsgRateLimitRequestsPerSecondInvalid 패닉 메시지: requestsPerSecond 설정 오류
	PanicMsgRateLimitRequestsPerSecondInvalid = "RateLimiting: requestsPerSecond는 양수여야 합니다 (현재값: %d)"

	// PanicMsgRateLimitBurstInvalid 패닉 메시지: burst 설정 오류
	PanicMsgRateLimitBurstInvalid = "RateLimiting: burst는 양수여야 합니다 (현재값: %d)"
)
