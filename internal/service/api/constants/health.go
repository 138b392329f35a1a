package constants

// 헬스체크 및 시스템 상태 관련 상수입니다.
const (
	// HealthStatusHealthy 헬스체크 상태: 정상
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy 헬스체크 상태: 비정상
	HealthStatusUnhealthy = "unhealthy"

	// DependencySchema 외부 의존성 ID: 피드 검증 스키마
	DependencySchema = "feed_schema"

	// DependencyOutputDir 외부 의존성 ID: 피드 저장 디렉토리
	DependencyOutputDir = "output_dir"

	// MsgDepStatusHealthy 외부 의존성 상태: 정상
	MsgDepStatusHealthy = "정상 작동 중"
)
