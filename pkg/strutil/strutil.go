// Package strutil 로그와 알림 메시지를 만들 때 사용하는 문자열 유틸리티를 제공합니다.
package strutil

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Integer 모든 정수 타입을 포괄하는 제네릭 인터페이스
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// FormatCommas 숫자를 천 단위 구분 기호(,)가 포함된 문자열로 변환합니다.
// 예: 1234567 -> "1,234,567"
func FormatCommas[T Integer](num T) string {
	var str string
	if num < 0 {
		str = strconv.FormatInt(int64(num), 10)
	} else {
		str = strconv.FormatUint(uint64(num), 10)
	}

	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var builder strings.Builder
	builder.Grow(len(sign) + len(str) + (len(str)-1)/3)
	builder.WriteString(sign)

	first := len(str) % 3
	if first == 0 {
		first = 3
	}
	builder.WriteString(str[:first])
	for i := first; i < len(str); i += 3 {
		builder.WriteByte(',')
		builder.WriteString(str[i : i+3])
	}

	return builder.String()
}

// SplitAndTrim 주어진 구분자로 문자열을 분리한 후, 각 항목의 앞뒤 공백을 제거하고 빈 문자열을 제외한 슬라이스를 반환합니다.
// 결과가 없으면 nil을 반환합니다.
// 예: "a, , b,c" (구분자 ",") -> ["a", "b", "c"]
func SplitAndTrim(s, sep string) []string {
	var result []string
	for _, token := range strings.Split(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// MaskSensitiveData 토큰, 키 등의 민감 정보를 로그에 남길 수 있도록 마스킹합니다.
func MaskSensitiveData(data string) string {
	if data == "" {
		return ""
	}

	// 3자 이하는 전체 마스킹
	if len(data) <= 3 {
		return "***"
	}

	// 앞 4자만 표시하고 나머지는 마스킹
	if len(data) <= 12 {
		return data[:4] + "***"
	}

	// 긴 토큰은 앞 4자 + 마스킹 + 뒤 4자
	return data[:4] + "***" + data[len(data)-4:]
}

// SafeSplit UTF-8 문자열을 limit 바이트 이내에서 문자 경계를 지켜 둘로 나눕니다.
// limit 이전에 문자 경계가 없으면 limit 위치에서 자릅니다.
func SafeSplit(s string, limit int) (chunk, remainder string) {
	if len(s) <= limit {
		return s, ""
	}

	i := limit
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	if i == 0 {
		return s[:limit], s[limit:]
	}

	return s[:i], s[i:]
}
