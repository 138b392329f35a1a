package schema

import (
	"regexp"
	"strconv"
	"time"
)

var (
	decimalRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)
	integerRe = regexp.MustCompile(`^[+-]?\d+$`)
)

// stringTypes 공백을 값의 일부로 취급하는 내장 타입
var stringTypes = map[string]bool{
	"string":           true,
	"normalizedString": true,
}

// builtinTypes 지원하는 XSD 내장 타입과 어휘 검사 함수
var builtinTypes = map[string]func(string) bool{
	"anyType":          func(string) bool { return true },
	"anySimpleType":    func(string) bool { return true },
	"string":           func(string) bool { return true },
	"normalizedString": func(string) bool { return true },
	"token":            func(string) bool { return true },
	"anyURI":           func(string) bool { return true },
	"language":         func(string) bool { return true },

	"boolean": func(s string) bool {
		return s == "true" || s == "false" || s == "1" || s == "0"
	},
	"decimal": decimalRe.MatchString,
	"float":   isFloat,
	"double":  isFloat,

	"integer":            integerRe.MatchString,
	"long":               isIntInRange(-1<<63, 1<<63-1),
	"int":                isIntInRange(-1<<31, 1<<31-1),
	"short":              isIntInRange(-1<<15, 1<<15-1),
	"byte":               isIntInRange(-1<<7, 1<<7-1),
	"nonNegativeInteger": isIntInRange(0, 1<<63-1),
	"positiveInteger":    isIntInRange(1, 1<<63-1),
	"unsignedInt":        isIntInRange(0, 1<<32-1),
	"unsignedShort":      isIntInRange(0, 1<<16-1),
	"unsignedByte":       isIntInRange(0, 1<<8-1),

	"date":     isDate,
	"dateTime": isDateTime,
}

func isFloat(s string) bool {
	switch s {
	case "INF", "-INF", "NaN":
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isIntInRange(min, max int64) func(string) bool {
	return func(s string) bool {
		if !integerRe.MatchString(s) {
			return false
		}
		i, err := strconv.ParseInt(s, 10, 64)
		return err == nil && i >= min && i <= max
	}
}

func isDate(s string) bool {
	for _, layout := range []string{"2006-01-02", "2006-01-02Z07:00"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isDateTime(s string) bool {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
