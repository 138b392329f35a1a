package api

import (
	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
)

var (
	// ErrAPIDisabled 설정에서 비활성화된 API 서비스를 시작하려고 할 때 반환하는 에러입니다.
	ErrAPIDisabled = apperrors.New(apperrors.InvalidInput, "API 서비스가 설정에서 비활성화되어 있습니다")
)
