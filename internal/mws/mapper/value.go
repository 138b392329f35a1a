package mapper

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// DateLayout Date 값의 직렬화 형식(ISO-8601 달력 날짜)입니다.
const DateLayout = "2006-01-02"

// Date 시각 정보 없이 달력 날짜로만 직렬화되는 값입니다. (예: LaunchDate, ReleaseDate)
type Date struct {
	time.Time
}

// NewDate 주어진 연/월/일의 Date를 생성합니다.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate "2006-01-02" 형식의 문자열을 Date로 변환합니다.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// String fmt.Stringer 인터페이스를 구현합니다.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Serialize 해석된 값을 피드 요소의 텍스트로 변환합니다.
//
//   - nil, 빈 값: ""
//   - time.Time: ISO-8601 날짜-시각 (RFC3339Nano)
//   - Date: ISO-8601 달력 날짜
//   - 그 외: 값의 기본 텍스트 표현
func Serialize(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case Date:
		return v.String()
	case *Date:
		if v == nil {
			return ""
		}
		return v.String()
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.RFC3339Nano)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case json.Number:
		return v.String()
	case []byte:
		return string(v)
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ""
		}
		return v.String()
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return Serialize(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}

// isPresent 해석 단계에서 값이 "존재"하는지 판정합니다.
//
// 숫자 0과 false는 유효한 값으로 취급합니다. nil, 빈 문자열, 빈 슬라이스/맵, 영(zero) 시각은 값이 없는 것으로 봅니다.
func isPresent(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case time.Time:
		return !v.IsZero()
	case Date:
		return !v.IsZero()
	case Element:
		return v.Text != "" || len(v.Attrs) > 0 || len(v.Children) > 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return isPresent(rv.Elem().Interface())
	case reflect.Slice, reflect.Map:
		return !rv.IsNil() && rv.Len() > 0
	case reflect.Array:
		return rv.Len() > 0
	}

	return true
}
