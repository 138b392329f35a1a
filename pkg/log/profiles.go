package log

// callerPathPrefix 로그에 출력되는 함수 경로에서 잘라낼 모듈 경로입니다.
const callerPathPrefix = "github.com/darkkaiser/mws-feed"

// NewProductionOptions 운영 환경(정기 피드 생성 배치)에 맞춘 로그 설정을 반환합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: InfoLevel,

		MaxAge:     30,
		MaxSizeMB:  50,
		MaxBackups: 10,

		EnableCriticalLog: true,  // 피드 생성 실패 이력 격리
		EnableConsoleLog:  false, // 배치 실행 시 터미널 출력 비활성화

		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}

// NewDevelopmentOptions 개발 환경에 맞춘 로그 설정을 반환합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: TraceLevel,

		MaxAge:     1,
		MaxSizeMB:  10,
		MaxBackups: 2,

		EnableCriticalLog: false,
		EnableConsoleLog:  true,

		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}
