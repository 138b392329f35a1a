// Package log logrus 기반의 애플리케이션 로깅 설정과 헬퍼를 제공합니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// StandardLogger 전역 Logger를 반환합니다. Echo, Cron 등 외부 라이브러리의 로거를 연결할 때 사용합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// WithFields 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	newFields := make(Fields, len(fields)+1)
	for k, v := range fields {
		newFields[k] = v
	}
	newFields["component"] = component
	return logrus.WithFields(newFields)
}

// SetDebugMode Debug 모드에 따라 로그 레벨을 설정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}
