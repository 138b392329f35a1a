package middleware

import (
	"mime"
	"slices"
	"strings"

	"github.com/darkkaiser/mws-feed/internal/service/api/constants"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/labstack/echo/v4"
)

// ValidateContentType 요청의 Content-Type이 허용 목록에 있는지 검증하는 미들웨어를 반환합니다.
//
// 본문이 없는 요청은 검증을 건너뜁니다. MIME 파라미터(예: charset=utf-8)는 무시하고
// 대소문자 구분 없이 비교합니다.
//
// Returns:
//   - 415 Unsupported Media Type: Content-Type이 허용 목록에 없는 경우
func ValidateContentType(allowed ...string) echo.MiddlewareFunc {
	normalized := make([]string, 0, len(allowed))
	for _, a := range allowed {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(a)))
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.ContentLength == 0 {
				return next(c)
			}

			contentType := req.Header.Get(echo.HeaderContentType)
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || !slices.Contains(normalized, strings.ToLower(mediaType)) {
				applog.WithComponentAndFields(constants.ComponentMiddlewareContentType, applog.Fields{
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
					"method":     req.Method,
					"path":       req.URL.Path,
					"expected":   allowed,
					"actual":     contentType,
					"remote_ip":  c.RealIP(),
				}).Warn(constants.LogMsgUnsupportedContentType)

				return ErrUnsupportedMediaType
			}

			return next(c)
		}
	}
}
