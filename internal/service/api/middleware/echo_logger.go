package middleware

import (
	"io"

	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/labstack/gommon/log"
)

// echoComponent Echo 프레임워크 내부 로그의 컴포넌트 이름
const echoComponent = "api.echo"

// echoLevels Echo 로그 레벨별 애플리케이션 로그 레벨
var echoLevels = map[log.Lvl]applog.Level{
	log.DEBUG: applog.DebugLevel,
	log.INFO:  applog.InfoLevel,
	log.WARN:  applog.WarnLevel,
	log.ERROR: applog.ErrorLevel,
}

// Logger echo.Logger 구현체입니다.
//
// Echo가 남기는 로그(리스너 시작, 바인딩 실패 등)를 component=api.echo 필드와 함께 애플리케이션
// 로거에 기록합니다. 출력 형식은 logrus 포매터가 정하므로 Prefix와 Header 설정은 무시됩니다.
type Logger struct {
	*applog.Logger
}

func (l Logger) entry() *applog.Entry {
	return l.Logger.WithField("component", echoComponent)
}

func (l Logger) jsonEntry(j log.JSON) *applog.Entry {
	return l.entry().WithFields(applog.Fields(j))
}

func (l Logger) Output() io.Writer     { return l.Logger.Out }
func (l Logger) SetOutput(w io.Writer) { l.Logger.SetOutput(w) }
func (l Logger) Prefix() string        { return "" }
func (l Logger) SetPrefix(string)      {}
func (l Logger) SetHeader(string)      {}

// Level 현재 로그 레벨에 대응하는 Echo 레벨을 반환합니다.
// Trace는 DEBUG로 보고, Echo에 대응 레벨이 없는 Fatal/Panic은 OFF입니다.
func (l Logger) Level() log.Lvl {
	current := l.Logger.GetLevel()
	if current == applog.TraceLevel {
		return log.DEBUG
	}
	for lvl, appLevel := range echoLevels {
		if appLevel == current {
			return lvl
		}
	}
	return log.OFF
}

// SetLevel Echo 레벨을 로그 레벨로 바꿔 설정합니다. OFF처럼 대응 레벨이 없으면 현재 레벨을 유지합니다.
func (l Logger) SetLevel(lvl log.Lvl) {
	if appLevel, ok := echoLevels[lvl]; ok {
		l.Logger.SetLevel(appLevel)
	}
}

func (l Logger) Print(i ...any)                 { l.entry().Print(i...) }
func (l Logger) Printf(format string, a ...any) { l.entry().Printf(format, a...) }
func (l Logger) Printj(j log.JSON)              { l.jsonEntry(j).Print() }

func (l Logger) Debug(i ...any)                 { l.entry().Debug(i...) }
func (l Logger) Debugf(format string, a ...any) { l.entry().Debugf(format, a...) }
func (l Logger) Debugj(j log.JSON)              { l.jsonEntry(j).Debug() }

func (l Logger) Info(i ...any)                 { l.entry().Info(i...) }
func (l Logger) Infof(format string, a ...any) { l.entry().Infof(format, a...) }
func (l Logger) Infoj(j log.JSON)              { l.jsonEntry(j).Info() }

func (l Logger) Warn(i ...any)                 { l.entry().Warn(i...) }
func (l Logger) Warnf(format string, a ...any) { l.entry().Warnf(format, a...) }
func (l Logger) Warnj(j log.JSON)              { l.jsonEntry(j).Warn() }

func (l Logger) Error(i ...any)                 { l.entry().Error(i...) }
func (l Logger) Errorf(format string, a ...any) { l.entry().Errorf(format, a...) }
func (l Logger) Errorj(j log.JSON)              { l.jsonEntry(j).Error() }

func (l Logger) Fatal(i ...any)                 { l.entry().Fatal(i...) }
func (l Logger) Fatalf(format string, a ...any) { l.entry().Fatalf(format, a...) }
func (l Logger) Fatalj(j log.JSON)              { l.jsonEntry(j).Fatal() }

func (l Logger) Panic(i ...any)                 { l.entry().Panic(i...) }
func (l Logger) Panicf(format string, a ...any) { l.entry().Panicf(format, a...) }
func (l Logger) Panicj(j log.JSON)              { l.jsonEntry(j).Panic() }
