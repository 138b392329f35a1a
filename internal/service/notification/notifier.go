// Package notification 피드 생성 결과와 오류를 운영자에게 알립니다.
package notification

import (
	"context"

	"github.com/darkkaiser/mws-feed/internal/config"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
)

// component 알림 서비스 로그의 컴포넌트 이름
const component = "notification"

// Notifier 알림 발송 기능을 제공하는 인터페이스입니다.
type Notifier interface {
	// Notify 제목이 포함된 알림 메시지를 발송합니다. errorOccurred가 true이면 오류 알림으로 강조됩니다.
	Notify(ctx context.Context, title, message string, errorOccurred bool) error
}

// New 설정에 따라 Notifier를 생성합니다. 활성화된 알림 채널이 없으면 로그만 남기는 Notifier를 반환합니다.
func New(c config.NotificationConfig) (Notifier, error) {
	if c.Telegram.Enabled {
		return NewTelegramNotifier(c.Telegram.BotToken, c.Telegram.ChatID)
	}

	applog.WithComponent(component).Info("활성화된 알림 채널이 없습니다. 알림은 로그로만 기록됩니다")

	return NoopNotifier{}, nil
}

// NoopNotifier 알림을 발송하지 않고 로그로만 남기는 Notifier입니다.
type NoopNotifier struct{}

// Notify Notifier 인터페이스를 구현합니다.
func (NoopNotifier) Notify(_ context.Context, title, message string, errorOccurred bool) error {
	entry := applog.WithComponentAndFields(component, applog.Fields{
		"title":          title,
		"message_length": len(message),
	})
	if errorOccurred {
		entry.Warn("알림 채널 없음: 오류 알림을 발송하지 않았습니다")
	} else {
		entry.Debug("알림 채널 없음: 알림을 발송하지 않았습니다")
	}

	return nil
}
