// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보 등 인증이 필요 없는 시스템 수준의 API를 처리합니다.
package system

import (
	"net/http"
	"os"
	"time"

	"github.com/darkkaiser/mws-feed/internal/pkg/version"
	"github.com/darkkaiser/mws-feed/internal/service/api/constants"
	"github.com/darkkaiser/mws-feed/internal/service/api/model/system"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/labstack/echo/v4"
)

// SchemaChecker 피드 검증용 스키마의 사용 가능 여부를 확인합니다.
type SchemaChecker interface {
	CheckSchema() error
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	schemaChecker SchemaChecker
	outputDir     string

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
// outputDir이 비어 있으면 출력 디렉터리 상태는 확인하지 않습니다.
func NewHandler(schemaChecker SchemaChecker, outputDir string, buildInfo version.Info) *Handler {
	if schemaChecker == nil {
		panic(constants.PanicMsgGeneratorRequired)
	}

	return &Handler{
		schemaChecker: schemaChecker,
		outputDir:     outputDir,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler 서버와 의존성(스키마, 출력 디렉터리)의 상태를 반환합니다.
// 의존성이 하나라도 unhealthy면 전체 상태도 unhealthy이며, 이때 503을 응답합니다.
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	deps := make(map[string]system.DependencyStatus)
	deps[constants.DependencySchema] = dependencyStatus(h.schemaChecker.CheckSchema())
	if h.outputDir != "" {
		deps[constants.DependencyOutputDir] = dependencyStatus(checkDir(h.outputDir))
	}

	status, code := constants.HealthStatusHealthy, http.StatusOK
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			status, code = constants.HealthStatusUnhealthy, http.StatusServiceUnavailable
			break
		}
	}

	return c.JSON(code, system.HealthResponse{
		Status:       status,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

func dependencyStatus(err error) system.DependencyStatus {
	if err != nil {
		return system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: err.Error(),
		}
	}
	return system.DependencyStatus{
		Status:  constants.HealthStatusHealthy,
		Message: constants.MsgDepStatusHealthy,
	}
}

func checkDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return &os.PathError{Op: "stat", Path: dir, Err: os.ErrInvalid}
	}
	return nil
}

// VersionHandler 서버의 빌드 정보를 반환합니다.
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:   h.buildInfo.Version,
		Commit:    h.buildInfo.Commit,
		BuildDate: h.buildInfo.BuildDate,
		GoVersion: h.buildInfo.GoVersion,
		OS:        h.buildInfo.OS,
		Arch:      h.buildInfo.Arch,
		Dirty:     h.buildInfo.Dirty,
	})
}
