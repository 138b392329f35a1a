// Package v1 피드 API의 v1 버전 라우트를 정의하고 설정합니다.
//
// 주요 엔드포인트:
//   - POST /api/v1/feeds           - 카탈로그로 피드 문서 생성
//   - POST /api/v1/feeds/validate  - 카탈로그로 만든 피드 문서의 스키마 검증
//
// 모든 엔드포인트는 App Key 인증과 JSON 본문을 요구합니다.
package v1

import (
	"github.com/darkkaiser/mws-feed/internal/service/api/middleware"
	"github.com/darkkaiser/mws-feed/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 설정합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, appKey string) {
	v1Group := e.Group("/api/v1",
		middleware.RequireAppKey(appKey),
		middleware.ValidateContentType(echo.MIMEApplicationJSON),
	)

	v1Group.POST("/feeds", h.GenerateFeedHandler)
	v1Group.POST("/feeds/validate", h.ValidateFeedHandler)
}
