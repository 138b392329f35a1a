package middleware

import (
	"crypto/subtle"

	"github.com/darkkaiser/mws-feed/internal/service/api/constants"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/labstack/echo/v4"
)

// RequireAppKey App Key 기반 인증 미들웨어를 반환합니다.
//
// App Key는 X-App-Key 헤더를 우선 사용하고, 없으면 app_key 쿼리 파라미터에서 읽습니다.
// 비교는 상수 시간으로 수행합니다.
//
// Panics:
//   - appKey가 빈 문자열인 경우
func RequireAppKey(appKey string) echo.MiddlewareFunc {
	if appKey == "" {
		panic(constants.PanicMsgAppKeyRequired)
	}
	expected := []byte(appKey)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(constants.XAppKey)
			if key == "" {
				key = c.QueryParam(constants.AppKeyQuery)
			}
			if key == "" {
				return ErrAppKeyRequired
			}

			if subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
				applog.WithComponentAndFields(constants.ComponentMiddlewareAuthentication, applog.Fields{
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
					"method":     c.Request().Method,
					"path":       c.Request().URL.Path,
					"remote_ip":  c.RealIP(),
				}).Warn(constants.LogMsgAuthFailed)

				return ErrInvalidAppKey
			}

			return next(c)
		}
	}
}
