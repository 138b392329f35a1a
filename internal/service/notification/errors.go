package notification

import (
	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
)

// NewErrTelegramClientInitFailed 텔레그램 봇 API 클라이언트를 초기화하지 못한 경우의 에러를 생성합니다.
func NewErrTelegramClientInitFailed(err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
}

// NewErrSendFailed 알림 메시지를 발송하지 못한 경우의 에러를 생성합니다.
func NewErrSendFailed(err error) error {
	return apperrors.Wrap(err, apperrors.ExecutionFailed, "텔레그램 알림 메시지 발송에 실패했습니다")
}
