package log

import "github.com/sirupsen/logrus"

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

const (
	// PanicLevel 로그를 기록한 후 panic을 발생시킵니다.
	PanicLevel Level = logrus.PanicLevel

	// FatalLevel 로그를 기록한 후 os.Exit(1)을 호출합니다. 설정 로드 실패 등 더 이상 진행할 수 없을 때 사용합니다.
	FatalLevel Level = logrus.FatalLevel

	// ErrorLevel 프로세스를 종료하지는 않지만 조치가 필요한 오류입니다.
	ErrorLevel Level = logrus.ErrorLevel

	// WarnLevel 스키마 검증 실패처럼 피드 생성을 막지는 않는 경고입니다.
	WarnLevel Level = logrus.WarnLevel

	// InfoLevel 정상 처리 흐름을 기록합니다.
	InfoLevel Level = logrus.InfoLevel

	// DebugLevel 필드 해석 과정 등 문제 해결을 위한 상세 정보입니다.
	DebugLevel Level = logrus.DebugLevel

	// TraceLevel 가장 세밀한 추적 정보입니다.
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

// Fields logrus.Fields의 별칭입니다.
type Fields = logrus.Fields

// Entry logrus.Entry의 별칭입니다.
type Entry = logrus.Entry

// Formatter logrus.Formatter의 별칭입니다.
type Formatter = logrus.Formatter

// Logger logrus.Logger의 별칭입니다.
type Logger = logrus.Logger
