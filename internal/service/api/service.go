// Package api 피드 생성/검증 HTTP API 서비스를 제공합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/darkkaiser/mws-feed/internal/config"
	"github.com/darkkaiser/mws-feed/internal/pkg/version"
	"github.com/darkkaiser/mws-feed/internal/service/api/constants"
	"github.com/darkkaiser/mws-feed/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/mws-feed/internal/service/api/v1"
	v1handler "github.com/darkkaiser/mws-feed/internal/service/api/v1/handler"
	"github.com/darkkaiser/mws-feed/internal/service/notification"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/labstack/echo/v4"
)

const (
	// shutdownTimeout Graceful Shutdown 시 최대 대기 시간
	shutdownTimeout = 5 * time.Second

	// notifyTimeout 서버 오류 알림 전송의 최대 대기 시간
	notifyTimeout = 30 * time.Second

	// notificationTitle 서버 오류 알림의 제목
	notificationTitle = "MWS 피드 API 서버"
)

// Service 피드 API 서버의 생명주기를 관리하는 서비스입니다.
//
// Start로 시작하면 별도 고루틴에서 HTTP 서버를 실행하고, context가 취소되면
// Graceful Shutdown을 수행합니다. 서버가 예기치 않게 종료되면 알림을 보냅니다.
type Service struct {
	appConfig *config.AppConfig

	generator v1handler.Generator
	notifier  notification.Notifier

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex

	// addrCh 서버가 수신을 시작하면 실제 주소를 전달합니다. (포트 0 사용 시 확인용)
	addrCh chan string
}

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig, g v1handler.Generator, n notification.Notifier, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if g == nil {
		panic(constants.PanicMsgGeneratorRequired)
	}
	if n == nil {
		panic(constants.PanicMsgNotifierRequired)
	}

	return &Service{
		appConfig: appConfig,

		generator: g,
		notifier:  n,

		buildInfo: buildInfo,

		addrCh: make(chan string, 1),
	}
}

// Start API 서비스를 시작합니다. 이 함수는 즉시 반환되며, 실제 서버는 고루틴에서 실행됩니다.
//
// 서비스가 완전히 종료되면 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if !s.appConfig.API.Enabled {
		serviceStopWG.Done()
		return ErrAPIDisabled
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버를 생성하고 핸들러와 라우트를 등록합니다.
func (s *Service) setupServer() *echo.Echo {
	apiConfig := s.appConfig.API

	systemHandler := system.NewHandler(s.generator, s.appConfig.Output.Dir, s.buildInfo)
	v1Handler := v1handler.NewHandler(s.generator)

	e := NewHTTPServer(HTTPServerConfig{
		Debug:             s.appConfig.Debug,
		AllowOrigins:      apiConfig.AllowOrigins,
		RateLimitEnabled:  apiConfig.RateLimit.Enabled,
		RequestsPerSecond: apiConfig.RateLimit.RequestsPerSecond,
		Burst:             apiConfig.RateLimit.Burst,
		EnableHSTS:        apiConfig.TLSServer,
	})

	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, v1Handler, apiConfig.AppKey)

	return e
}

// startHTTPServer HTTP 서버를 시작하고, 서버가 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.API.ListenPort
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": port,
		"tls":  s.appConfig.API.TLSServer,
	}).Info(constants.LogMsgServiceHTTPServerStarting)

	go s.reportListenerAddr(e, done)

	address := fmt.Sprintf(":%d", port)
	if s.appConfig.API.TLSServer {
		s.handleServerError(e.StartTLS(address, s.appConfig.API.TLSCertFile, s.appConfig.API.TLSKeyFile))
		return
	}
	s.handleServerError(e.Start(address))
}

// reportListenerAddr 서버가 수신을 시작하면 실제 주소를 addrCh로 한 번 전달합니다.
func (s *Service) reportListenerAddr(e *echo.Echo, done <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			addr := e.ListenerAddr()
			if s.appConfig.API.TLSServer {
				addr = e.TLSListenerAddr()
			}
			if addr != nil {
				select {
				case s.addrCh <- addr.String():
				default:
				}
				return
			}
		}
	}
}

// handleServerError HTTP 서버 종료 에러를 처리합니다.
// Graceful Shutdown이 아닌 종료는 로깅 후 알림을 전송합니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	message := constants.LogMsgServiceHTTPServerFatalError
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(message)

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if notifyErr := s.notifier.Notify(ctx, notificationTitle, fmt.Sprintf("%s\n\n%s", message, err), true); notifyErr != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": notifyErr,
		}).Warn("API 서버 오류 알림 전송 실패")
	}
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown을 수행합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 이미 종료되었으므로 상태만 정리
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
