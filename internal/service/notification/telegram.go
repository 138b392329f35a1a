package notification

import (
	"context"
	"errors"
	"net/http"
	"time"

	applog "github.com/darkkaiser/mws-feed/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const (
	// messageMaxLength 텔레그램 메시지 하나의 최대 바이트 길이 (API 제한 4096에서 HTML 태그 여유분을 뺀 값)
	messageMaxLength = 3900

	// maxRetries 메시지 조각 하나에 대한 최대 전송 시도 횟수
	maxRetries = 3

	// defaultRetryDelay 서버가 대기 시간을 지정하지 않았을 때 재시도 전 대기 시간
	defaultRetryDelay = 1 * time.Second

	// defaultRateLimit 초당 허용 전송 수와 순간 허용량
	defaultRateLimit = 1
	defaultRateBurst = 5

	// httpClientTimeout 텔레그램 API 호출의 HTTP 타임아웃
	httpClientTimeout = 30 * time.Second
)

// client 텔레그램 봇 API의 메시지 전송 기능을 추상화한 인터페이스입니다.
type client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// telegramNotifier 텔레그램 채팅방으로 알림을 발송하는 Notifier 구현체입니다.
type telegramNotifier struct {
	client  client
	chatID  int64
	limiter *rate.Limiter

	retryDelay time.Duration
}

// NewTelegramNotifier 봇 토큰으로 텔레그램 API 클라이언트를 생성하고 Notifier를 반환합니다.
// 생성 과정에서 토큰 확인을 위해 텔레그램 API(getMe)를 호출합니다.
func NewTelegramNotifier(botToken string, chatID int64) (Notifier, error) {
	botAPI, err := tgbotapi.NewBotAPIWithClient(botToken, tgbotapi.APIEndpoint, &http.Client{Timeout: httpClientTimeout})
	if err != nil {
		return nil, NewErrTelegramClientInitFailed(err)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"bot_username": botAPI.Self.UserName,
		"chat_id":      chatID,
	}).Info("텔레그램 알림 채널 초기화 완료")

	return newTelegramNotifier(botAPI, chatID), nil
}

func newTelegramNotifier(c client, chatID int64) *telegramNotifier {
	return &telegramNotifier{
		client:     c,
		chatID:     chatID,
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
		retryDelay: defaultRetryDelay,
	}
}

// Notify 메시지를 조각으로 나누어 순서대로 발송합니다. 한 조각이라도 실패하면 나머지는 발송하지 않습니다.
func (n *telegramNotifier) Notify(ctx context.Context, title, message string, errorOccurred bool) error {
	for _, chunk := range splitMessage(buildMessage(title, message, errorOccurred), messageMaxLength) {
		if err := n.sendWithRetry(ctx, chunk, true); err != nil {
			return NewErrSendFailed(err)
		}
	}
	return nil
}

// sendWithRetry 메시지 조각 하나를 전송하며, 일시적인 오류는 재시도합니다.
//
// HTML 파싱 오류(400)가 발생하면 PlainText 모드로 전환해 다시 전송하고,
// 429 응답의 Retry-After는 그대로 따릅니다.
func (n *telegramNotifier) sendWithRetry(ctx context.Context, message string, useHTML bool) error {
	messageConfig := tgbotapi.NewMessage(n.chatID, message)
	if useHTML {
		messageConfig.ParseMode = tgbotapi.ModeHTML
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := n.client.Send(messageConfig)
		if err == nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id":        n.chatID,
				"attempt":        attempt,
				"mode":           formatParseMode(messageConfig.ParseMode),
				"message_length": len(message),
			}).Info("발송 성공: 텔레그램 API로 메시지가 정상 전송되었습니다")

			return nil
		}

		lastErr = err
		code, retryAfter := parseTelegramError(err)

		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": n.chatID,
			"attempt": attempt,
			"code":    code,
			"error":   err,
			"mode":    formatParseMode(messageConfig.ParseMode),
		}).Warn("발송 실패: 텔레그램 API 호출에서 오류가 발생했습니다")

		if useHTML && code == http.StatusBadRequest {
			return n.sendWithRetry(ctx, message, false)
		}
		if !shouldRetry(code) || attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.delayForRetry(retryAfter)):
		}
	}

	return lastErr
}

// shouldRetry 4xx 응답은 429를 제외하고 재시도하지 않습니다. 5xx와 네트워크 오류(code 0)는 재시도합니다.
func shouldRetry(statusCode int) bool {
	if statusCode >= 400 && statusCode < 500 {
		return statusCode == http.StatusTooManyRequests
	}
	return true
}

func (n *telegramNotifier) delayForRetry(retryAfter int) time.Duration {
	if retryAfter > 0 {
		return time.Duration(retryAfter) * time.Second
	}
	return n.retryDelay
}

func formatParseMode(mode string) string {
	if mode == tgbotapi.ModeHTML {
		return "HTML"
	}
	return "PlainText"
}

// parseTelegramError 텔레그램 API 에러에서 에러 코드와 Retry-After(초) 값을 추출합니다.
func parseTelegramError(err error) (code int, retryAfter int) {
	var apiErr tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.ResponseParameters.RetryAfter
	}

	var apiErrPtr *tgbotapi.Error
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.ResponseParameters.RetryAfter
	}

	return 0, 0
}
