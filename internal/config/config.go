package config

import (
	"fmt"
	"os"
	"strings"

	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
	"github.com/darkkaiser/mws-feed/pkg/strutil"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "mws-feed"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 참조하는 기본 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// envPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	envPrefix = "MWSFEED_"

	// ------------------------------------------------------------------------------------------------
	// 기본값
	// ------------------------------------------------------------------------------------------------

	// DefaultOperationType 카탈로그의 상품을 피드에 추가할 때 사용하는 기본 작업 유형
	DefaultOperationType = "Update"

	// DefaultCatalogEncoding 카탈로그 파일의 기본 문자 인코딩
	DefaultCatalogEncoding = "utf-8"

	// DefaultOutputDir 생성된 피드 문서가 저장되는 기본 디렉토리
	DefaultOutputDir = "feeds"

	// DefaultListenPort 피드 API 서버의 기본 포트
	DefaultListenPort = 2480

	// DefaultRateLimitPerSecond 클라이언트 IP별 초당 허용 요청 수
	DefaultRateLimitPerSecond = 5

	// DefaultRateLimitBurst 클라이언트 IP별 순간 허용 요청 수
	DefaultRateLimitBurst = 10

	// DefaultTimeSpec 피드를 주기적으로 생성하는 기본 Cron 표현식 (매일 새벽 3시)
	DefaultTimeSpec = "0 0 3 * * *"
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug        bool               `json:"debug"`
	MerchantID   string             `json:"merchant_id" validate:"required"`
	Feed         FeedConfig         `json:"feed"`
	Catalog      CatalogConfig      `json:"catalog"`
	Output       OutputConfig       `json:"output"`
	Defaults     map[string]any     `json:"defaults"`
	API          APIConfig          `json:"api"`
	Scheduler    SchedulerConfig    `json:"scheduler"`
	Notification NotificationConfig `json:"notification"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "설정", "MerchantID"); err != nil {
		return err
	}
	if err := checkStruct(v, &c.Feed, "피드(feed)"); err != nil {
		return err
	}
	if err := checkStruct(v, &c.Catalog, "카탈로그(catalog)"); err != nil {
		return err
	}
	if err := checkStruct(v, &c.Output, "출력(output)"); err != nil {
		return err
	}
	if err := checkStruct(v, &c.API, "API(api)"); err != nil {
		return err
	}
	if err := checkStruct(v, &c.Scheduler, "스케줄러(scheduler)"); err != nil {
		return err
	}
	if err := checkStruct(v, &c.Notification.Telegram, "텔레그램 알림(notification.telegram)"); err != nil {
		return err
	}

	for key := range c.Defaults {
		if strings.TrimSpace(key) == "" {
			return apperrors.New(apperrors.InvalidInput, "기본값(defaults)에 빈 키가 포함되어 있습니다")
		}
	}

	return nil
}

// FeedConfig 피드 문서 생성 방식을 정의하는 설정 구조체
type FeedConfig struct {
	PurgeAndReplace bool   `json:"purge_and_replace"`
	PrettyPrint     bool   `json:"pretty_print"`
	Validate        bool   `json:"validate"`
	OperationType   string `json:"operation_type" validate:"required,oneof=Update Delete PartialUpdate"`

	// SchemaFile 검증에 사용할 XSD 진입점 경로입니다. 비어 있으면 실행 파일에 내장된 스키마를 사용합니다.
	SchemaFile string `json:"schema_file" validate:"omitempty,file"`

	// PlainTextFields HTML 태그를 제거한 순수 텍스트로 출력할 속성 목록입니다. (예: Description)
	PlainTextFields []string `json:"plain_text_fields" validate:"dive,required"`
}

// CatalogConfig 피드의 원천 데이터인 상품 카탈로그 파일 설정 구조체
type CatalogConfig struct {
	File     string `json:"file" validate:"required"`
	Encoding string `json:"encoding" validate:"omitempty,charset"`
}

// OutputConfig 생성된 피드 문서의 저장 위치 설정 구조체
type OutputConfig struct {
	Dir string `json:"dir" validate:"required"`
}

// APIConfig 피드 생성/검증 HTTP API 서버 설정 구조체
type APIConfig struct {
	Enabled      bool            `json:"enabled"`
	ListenPort   int             `json:"listen_port" validate:"required_if=Enabled true,omitempty,min=1,max=65535"`
	AppKey       string          `json:"app_key" validate:"required_if=Enabled true"`
	AllowOrigins []string        `json:"allow_origins" validate:"dive,cors_origin"`
	RateLimit    RateLimitConfig `json:"rate_limit"`

	// TLSServer true이면 TLSCertFile/TLSKeyFile로 HTTPS 서버를 실행합니다.
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
}

// RateLimitConfig 클라이언트 IP별 요청 제한 설정 구조체
type RateLimitConfig struct {
	Enabled           bool `json:"enabled"`
	RequestsPerSecond int  `json:"requests_per_second" validate:"required_if=Enabled true,omitempty,min=1"`
	Burst             int  `json:"burst" validate:"required_if=Enabled true,omitempty,min=1"`
}

// SchedulerConfig 카탈로그 파일로부터 피드를 주기적으로 생성하는 스케줄러 설정 구조체
type SchedulerConfig struct {
	Enabled  bool   `json:"enabled"`
	TimeSpec string `json:"time_spec" validate:"required_if=Enabled true,omitempty,cronspec"`
}

// NotificationConfig 피드 생성 결과 알림 설정 구조체
type NotificationConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

// TelegramConfig 텔레그램 봇 알림 설정 구조체
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true"`
}

// newDefaultConfig 설정 파일과 환경 변수보다 낮은 우선순위로 적용되는 기본 설정을 생성합니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Feed: FeedConfig{
			PrettyPrint:     true,
			Validate:        true,
			OperationType:   DefaultOperationType,
			PlainTextFields: []string{"Description"},
		},
		Catalog: CatalogConfig{
			Encoding: DefaultCatalogEncoding,
		},
		Output: OutputConfig{
			Dir: DefaultOutputDir,
		},
		API: APIConfig{
			ListenPort:   DefaultListenPort,
			AllowOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: DefaultRateLimitPerSecond,
				Burst:             DefaultRateLimitBurst,
			},
		},
		Scheduler: SchedulerConfig{
			TimeSpec: DefaultTimeSpec,
		},
	}
}

// normalizeEnvKey 환경 변수 이름을 koanf 키 경로로 변환합니다.
//
// 예: MWSFEED_FEED__PURGE_AND_REPLACE -> feed.purge_and_replace
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// splitListItems 목록의 각 항목을 쉼표로 나누고 공백을 제거해 하나의 목록으로 펼칩니다.
func splitListItems(items []string) []string {
	if len(items) == 0 {
		return items
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		result = append(result, strutil.SplitAndTrim(item, ",")...)
	}
	return result
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.NotFound, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드 (최우선 순위)
	if err := k.Load(env.Provider(envPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (알 수 없는 키는 에러)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 환경 변수로 지정한 목록은 쉼표로 구분된 하나의 항목으로 들어온다.
	appConfig.Feed.PlainTextFields = splitListItems(appConfig.Feed.PlainTextFields)
	appConfig.API.AllowOrigins = splitListItems(appConfig.API.AllowOrigins)

	// 5. 유효성 검사
	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
