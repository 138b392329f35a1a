package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/darkkaiser/mws-feed/internal/config"
	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
	"github.com/darkkaiser/mws-feed/internal/pkg/version"
	"github.com/darkkaiser/mws-feed/internal/service"
	"github.com/darkkaiser/mws-feed/internal/service/api"
	"github.com/darkkaiser/mws-feed/internal/service/generator"
	"github.com/darkkaiser/mws-feed/internal/service/notification"
	"github.com/darkkaiser/mws-feed/internal/service/scheduler"
	"github.com/darkkaiser/mws-feed/internal/storage"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
)

const (
	component = "main"

	// notifyTimeout 일회성 생성 실패 알림의 최대 대기 시간
	notifyTimeout = 30 * time.Second

	// notificationTitle 일회성 생성 실패 알림의 제목
	notificationTitle = "MWS 상품 피드 생성"
)

// errNoServiceEnabled serve 명령 실행 시 활성화된 서비스가 하나도 없을 때 반환됩니다.
var errNoServiceEnabled = apperrors.New(apperrors.InvalidInput, "활성화된 서비스가 없습니다. 설정 파일에서 api.enabled 또는 scheduler.enabled를 활성화해주세요")

// setupLogging 설정의 Debug 여부에 맞춰 로그 시스템을 초기화합니다.
func setupLogging(appConfig *config.AppConfig) (io.Closer, error) {
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	closer, err := applog.Setup(logOpts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "로그 시스템 초기화에 실패했습니다")
	}
	applog.SetDebugMode(appConfig.Debug)

	return closer, nil
}

// application 설정으로부터 조립된 서비스 구성 요소들입니다.
type application struct {
	appConfig *config.AppConfig
	buildInfo version.Info

	generator *generator.Generator
	notifier  notification.Notifier
}

// newApplication 저장소, 생성기, 알림 채널을 순서대로 생성합니다.
func newApplication(appConfig *config.AppConfig) (*application, error) {
	buildInfo := version.Get()

	applog.WithComponentAndFields(component, applog.Fields{
		"version":     buildInfo.String(),
		"merchant_id": appConfig.MerchantID,
		"env":         map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("애플리케이션 초기화 시작")

	store, err := storage.NewFileStore(appConfig.Output.Dir)
	if err != nil {
		return nil, err
	}

	g, err := generator.New(appConfig, store)
	if err != nil {
		return nil, err
	}

	n, err := notification.New(appConfig.Notification)
	if err != nil {
		return nil, err
	}

	return &application{
		appConfig: appConfig,
		buildInfo: buildInfo,
		generator: g,
		notifier:  n,
	}, nil
}

// generateOnce 설정된 카탈로그 파일로부터 피드 문서를 한 번 생성해 저장합니다.
//
// 스키마 위반은 실패로 취급하지 않고 경고로 기록합니다. 생성에 실패하면 알림을 보냅니다.
func (a *application) generateOnce(ctx context.Context) (*generator.Result, error) {
	started := time.Now()

	result, err := a.generator.GenerateFromFile(ctx)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"catalog_file": a.generator.CatalogFile(),
			"error":        err,
		}).Error("피드 생성 실패: 카탈로그로부터 피드 문서를 생성하지 못했습니다")

		a.notify(ctx, fmt.Sprintf("피드 생성 실패: %v", err))
		return nil, err
	}

	entry := applog.WithComponentAndFields(component, applog.Fields{
		"merchant_id": result.MerchantID,
		"messages":    result.Messages,
		"validated":   result.Validated,
		"violations":  len(result.Violations),
		"path":        result.Path,
		"elapsed":     time.Since(started).String(),
	})
	if !result.Valid() {
		for _, v := range result.Violations {
			entry.WithField("violation", v.String()).Debug("스키마 위반")
		}
		entry.Warn("피드 생성 완료: 스키마 위반이 발견되었습니다")
	} else {
		entry.Info("피드 생성 완료")
	}

	return result, nil
}

func (a *application) notify(ctx context.Context, message string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := a.notifier.Notify(ctx, notificationTitle, message, true); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Warn("알림 발송 실패")
	}
}

// services 설정에서 활성화된 장기 실행 서비스 목록을 반환합니다.
func (a *application) services() []service.Service {
	var services []service.Service
	if a.appConfig.API.Enabled {
		services = append(services, api.NewService(a.appConfig, a.generator, a.notifier, a.buildInfo))
	}
	if a.appConfig.Scheduler.Enabled {
		services = append(services, scheduler.NewService(a.appConfig.Scheduler.TimeSpec, a.generator, a.notifier))
	}
	return services
}

// serve 활성화된 서비스를 모두 시작하고, ctx가 취소되면 모든 서비스가 종료될 때까지 기다립니다.
func (a *application) serve(ctx context.Context) error {
	services := a.services()
	if len(services) == 0 {
		return errNoServiceEnabled
	}

	serviceStopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			// 이미 시작된 서비스도 종료
			cancel()
			serviceStopWG.Wait()

			return err
		}
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"services": len(services),
	}).Info("서버 가동 완료")

	<-serviceStopCtx.Done()

	applog.WithComponent(component).Info("종료 신호를 수신했습니다. 서비스를 종료합니다")
	cancel()
	serviceStopWG.Wait()

	applog.WithComponent(component).Info("모든 서비스가 종료되었습니다")

	return nil
}
