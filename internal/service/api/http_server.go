package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/mws-feed/internal/service/api/constants"
	"github.com/darkkaiser/mws-feed/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/mws-feed/internal/service/api/middleware"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	AllowOrigins []string

	// RateLimitEnabled IP 기반 요청 제한 사용 여부
	RateLimitEnabled  bool
	RequestsPerSecond int
	Burst             int

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (0이면 기본값 60초)
	RequestTimeout time.Duration

	// MaxBodySize 요청 본문의 최대 크기 (예: "8M", 비어 있으면 기본값)
	MaxBodySize string

	// EnableHSTS HTTPS 응답에 Strict-Transport-Security 헤더를 추가할지 여부
	EnableHSTS bool
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery - 다른 미들웨어의 panic까지 복구
//  2. RequestID - 로그에 request_id를 남기기 위해 로깅보다 먼저 적용
//  3. Server 헤더 제거
//  4. HTTPLogger - 429/503 응답도 기록되도록 RateLimit/Timeout보다 먼저 적용
//  5. RateLimiting (설정된 경우)
//  6. BodyLimit - 초과 시 413
//  7. Timeout - 초과 시 503
//  8. CORS
//  9. Secure - 보안 헤더 추가 (EnableHSTS이면 HSTS 포함)
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 설정해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}
	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}
	maxBodySize := cfg.MaxBodySize
	if maxBodySize == "" {
		maxBodySize = constants.DefaultMaxBodySize
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	if cfg.RateLimitEnabled {
		e.Use(appmiddleware.RateLimiting(cfg.RequestsPerSecond, cfg.Burst))
	}
	e.Use(middleware.BodyLimit(maxBodySize))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      timeout,
		ErrorMessage: constants.ErrMsgRequestTimeout,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, constants.XAppKey},
		ExposeHeaders: []string{
			constants.XFeedMessages,
			constants.XFeedViolations,
			constants.XFeedPath,
		},
	}))
	e.Use(middleware.SecureWithConfig(secureConfig(cfg.EnableHSTS)))

	return e
}

func secureConfig(enableHSTS bool) middleware.SecureConfig {
	c := middleware.DefaultSecureConfig
	if enableHSTS {
		c.HSTSMaxAge = constants.DefaultHSTSMaxAge
	}
	return c
}
