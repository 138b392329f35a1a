// Package scheduler 설정된 카탈로그 파일로부터 Cron 스케줄에 맞춰 피드 문서를 주기적으로 생성합니다.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/darkkaiser/mws-feed/internal/pkg/mark"
	"github.com/darkkaiser/mws-feed/internal/service/generator"
	"github.com/darkkaiser/mws-feed/internal/service/notification"
	"github.com/darkkaiser/mws-feed/pkg/cronx"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/darkkaiser/mws-feed/pkg/strutil"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

const (
	// generateTimeout 피드 생성 한 번에 허용되는 최대 시간
	generateTimeout = 10 * time.Minute

	// notifyTimeout 결과 알림 발송에 허용되는 최대 시간
	notifyTimeout = 1 * time.Minute

	// maxReportedViolations 알림 메시지에 포함할 스키마 위반의 최대 개수
	maxReportedViolations = 10

	// notificationTitle 스케줄러가 보내는 알림의 제목
	notificationTitle = "MWS 상품 피드 생성"
)

// Generator 설정된 카탈로그 파일로부터 피드 문서를 생성하고 저장합니다.
type Generator interface {
	GenerateFromFile(ctx context.Context) (*generator.Result, error)
}

// Scheduler 설정된 Cron 표현식에 맞춰 피드 생성을 실행하고, 그 결과를 알리는 서비스입니다.
type Scheduler struct {
	timeSpec string

	cron *cron.Cron

	generator Generator
	notifier  notification.Notifier

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
func NewService(timeSpec string, g Generator, n notification.Notifier) *Scheduler {
	if g == nil {
		panic("Generator는 필수입니다")
	}
	if n == nil {
		panic("Notifier는 필수입니다")
	}

	return &Scheduler{
		timeSpec:  timeSpec,
		generator: g,
		notifier:  n,
	}
}

// Start 스케줄러를 시작합니다. 서비스 종료 신호(serviceStopCtx)를 받으면 실행 중인 생성 작업이 끝날 때까지 기다린 뒤 중지합니다.
//
// 어떤 경우에도 serviceStopWG.Done()은 정확히 한 번 호출됩니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// StandardParser: 초 단위를 포함한 6필드 표현식
	// Recover: 작업 중 발생한 Panic 복구
	// SkipIfStillRunning: 이전 생성이 끝나지 않았으면 이번 실행을 건너뜀
	c := cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	if _, err := c.AddFunc(s.timeSpec, func() { s.run(serviceStopCtx) }); err != nil {
		serviceStopWG.Done()
		return NewErrInvalidCronSpec(s.timeSpec, err)
	}

	s.cron = c
	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"time_spec": s.timeSpec,
		"next_run":  s.cron.Entries()[0].Next,
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 스케줄러를 중지합니다. 진행 중인 생성 작업이 있으면 완료될 때까지 기다립니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// run 피드를 한 번 생성하고 결과를 알립니다.
//
// 생성 작업의 컨텍스트는 서비스 종료 신호와 분리되어 있어, 종료 중에도 진행 중인 생성은 끝까지 수행됩니다.
func (s *Scheduler) run(serviceStopCtx context.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	started := time.Now()
	result, err := s.generator.GenerateFromFile(ctx)
	if err != nil {
		s.logAndNotifyError(serviceStopCtx, "피드 생성 실패: 카탈로그로부터 피드 문서를 생성하지 못했습니다", err)
		return
	}

	fields := applog.Fields{
		"merchant_id": result.MerchantID,
		"messages":    result.Messages,
		"path":        result.Path,
		"violations":  len(result.Violations),
		"elapsed":     time.Since(started).String(),
	}
	if !result.Valid() {
		applog.WithComponentAndFields(component, fields).Warn("예약된 피드 생성 완료: 스키마 위반이 발견되었습니다")
		s.notify(serviceStopCtx, summaryMessage(result), true)
		return
	}

	applog.WithComponentAndFields(component, fields).Info("예약된 피드 생성 완료")
	s.notify(serviceStopCtx, summaryMessage(result), false)
}

// logAndNotifyError 스케줄러 실행 중 발생한 오류를 로깅하고 관리자에게 알립니다.
func (s *Scheduler) logAndNotifyError(serviceStopCtx context.Context, message string, err error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"time_spec": s.timeSpec,
		"error":     err,
	}).Error(message)

	s.notify(serviceStopCtx, fmt.Sprintf("%s: %v", message, err), true)
}

func (s *Scheduler) notify(serviceStopCtx context.Context, message string, errorOccurred bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(serviceStopCtx), notifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, notificationTitle, message, errorOccurred); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Warn("알림 발송 실패: 피드 생성 결과를 알리지 못했습니다")
	}
}

// summaryMessage 생성 결과를 알림 메시지로 요약합니다.
func summaryMessage(r *generator.Result) string {
	var sb strings.Builder

	status := mark.Success
	if len(r.Violations) > 0 {
		status = mark.Warning
	}

	fmt.Fprintf(&sb, "%s 판매자: %s\n", status, r.MerchantID)
	fmt.Fprintf(&sb, "메시지: %s건\n", strutil.FormatCommas(r.Messages))
	fmt.Fprintf(&sb, "크기: %s바이트\n", strutil.FormatCommas(len(r.Document)))
	fmt.Fprintf(&sb, "저장 경로: %s", r.Path)

	if len(r.Violations) == 0 {
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n\n스키마 위반 %s건", strutil.FormatCommas(len(r.Violations)))
	for i, v := range r.Violations {
		if i == maxReportedViolations {
			fmt.Fprintf(&sb, "\n... 외 %s건", strutil.FormatCommas(len(r.Violations)-maxReportedViolations))
			break
		}
		sb.WriteString("\n- ")
		sb.WriteString(v.String())
	}

	return sb.String()
}
