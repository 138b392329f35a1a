// Package mark 알림 메시지에서 상태를 표시하는 이모지 상수를 관리합니다.
package mark

// Mark 알림 메시지에 붙이는 이모지입니다.
type Mark string

const (
	// Success 정상 완료
	Success Mark = "✅"

	// Warning 완료되었으나 확인이 필요함 (예: 스키마 위반)
	Warning Mark = "⚠️"

	// Alert 오류
	Alert Mark = "🚨"
)

// Values 정의된 모든 마크를 반환합니다.
func Values() []Mark {
	return []Mark{Success, Warning, Alert}
}

// WithSpace 마크 앞에 구분용 공백을 붙여 반환합니다. 빈 마크는 빈 문자열을 반환합니다.
func (m Mark) WithSpace() string {
	if m == "" {
		return ""
	}
	return " " + string(m)
}

// String 마크의 이모지 값을 반환합니다.
func (m Mark) String() string {
	return string(m)
}
