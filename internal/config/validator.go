package config

import (
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
	"github.com/darkkaiser/mws-feed/pkg/cronx"
	"github.com/darkkaiser/mws-feed/pkg/validation"
	"github.com/go-playground/validator/v10"
	"golang.org/x/net/html/charset"
)

// newValidator 새로운 Validator 인스턴스를 생성하고 커스텀 유효성 검사 함수를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 검증 에러 메시지에 Go 구조체 필드명 대신 JSON 이름을 보여주도록 설정합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("charset", validateCharset); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'charset' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}
	if err := v.RegisterValidation("cronspec", validateCronSpec); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cronspec' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	if err := v.RegisterValidation("cors_origin", validateCORSOrigin); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cors_origin' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

// validateCharset 입력된 문자열이 HTML/WHATWG 인코딩 레이블(예: utf-8, euc-kr, shift_jis)로 인식되는지 검증합니다.
func validateCharset(fl validator.FieldLevel) bool {
	enc, _ := charset.Lookup(fl.Field().String())
	return enc != nil
}

// validateCronSpec 입력된 문자열이 스케줄러가 사용하는 6필드(초 포함) Cron 표현식인지 검증합니다.
func validateCronSpec(fl validator.FieldLevel) bool {
	return cronx.Validate(fl.Field().String()) == nil
}

// validateCORSOrigin 입력된 문자열이 'scheme://host[:port]' 형식의 CORS Origin 또는 와일드카드('*')인지 검증합니다.
func validateCORSOrigin(fl validator.FieldLevel) bool {
	return validation.ValidateCORSOrigin(fl.Field().String()) == nil
}

// checkStruct 구조체 인스턴스의 유효성을 태그 규칙에 따라 검증하고, 발생한 오류를 사용자 친화적인 도메인 에러로 변환합니다.
//
// fields를 제공하면 해당 필드 범위 내에서만 부분 검증을 수행합니다.
func checkStruct(v *validator.Validate, s any, contextName string, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.StructPartial(s, fields...)
	} else {
		err = v.Struct(s)
	}
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}

	// 첫 번째 에러만 상세히 보고
	firstErr := validationErrors[0]

	// dive 검증의 에러는 StructField가 "AllowOrigins[0]" 형태입니다.
	if strings.HasPrefix(firstErr.StructField(), "AllowOrigins") {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS 허용 Origin(allow_origins)의 형식이 올바르지 않습니다: '%v'", firstErr.Value()))
	}

	switch firstErr.StructField() {
	case "MerchantID":
		return apperrors.New(apperrors.InvalidInput, "판매자 식별자(merchant_id)가 설정되지 않았습니다")
	case "SchemaFile":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("스키마 파일(schema_file)을 찾을 수 없습니다: '%v'", firstErr.Value()))
	case "OperationType":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("작업 유형(operation_type)은 Update, Delete, PartialUpdate 중 하나여야 합니다: '%v'", firstErr.Value()))
	case "File":
		return apperrors.New(apperrors.InvalidInput, "카탈로그 파일 경로(file)가 설정되지 않았습니다")
	case "Encoding":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지원하지 않는 카탈로그 문자 인코딩입니다: '%v'", firstErr.Value()))
	case "Dir":
		return apperrors.New(apperrors.InvalidInput, "피드 저장 디렉토리(dir)가 설정되지 않았습니다")
	case "ListenPort":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("API 서버 포트(listen_port)는 1에서 65535 사이여야 합니다: '%v'", firstErr.Value()))
	case "AppKey":
		return apperrors.New(apperrors.InvalidInput, "API 서버 활성화 시 인증 키(app_key)는 필수입니다")
	case "TLSCertFile", "TLSKeyFile":
		name := map[string]string{"TLSCertFile": "인증서 파일(tls_cert_file)", "TLSKeyFile": "키 파일(tls_key_file)"}[firstErr.StructField()]
		if firstErr.Tag() == "required_if" {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("TLS 서버 활성화 시 %s 경로는 필수입니다", name))
		}
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS %s을 찾을 수 없습니다: '%v'", name, firstErr.Value()))
	case "RequestsPerSecond", "Burst":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("요청 제한(rate_limit)의 %s 값은 1 이상이어야 합니다", firstErr.Field()))
	case "TimeSpec":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("스케줄러의 Cron 표현식(time_spec)이 올바르지 않습니다: '%v'", firstErr.Value()))
	case "BotToken":
		return apperrors.New(apperrors.InvalidInput, "텔레그램 알림 활성화 시 봇 토큰(bot_token)은 필수입니다")
	case "ChatID":
		return apperrors.New(apperrors.InvalidInput, "텔레그램 알림 활성화 시 채팅 ID(chat_id)는 필수입니다")
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s (조건: %s)", contextName, firstErr.Field(), firstErr.Tag()))
}
