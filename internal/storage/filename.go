package storage

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

const (
	// feedFilePrefix 피드 파일 이름의 접두사
	feedFilePrefix = "product-feed"

	// feedFileExt 피드 파일의 확장자
	feedFileExt = ".xml"

	// timestampLayout 파일 이름에 포함되는 생성 시각 형식 (yyyymmddhhmmss)
	timestampLayout = "20060102150405"

	// maxMerchantNameBytes 파일 이름에 포함되는 판매자 ID의 최대 바이트 길이
	maxMerchantNameBytes = 64
)

// filenameReplacer 파일 시스템에서 문제를 일으킬 수 있는 문자를 하이픈으로 치환합니다.
var filenameReplacer = strings.NewReplacer(
	"..", "--",
	"/", "-",
	"\\", "-",
	"|", "-",
	"<", "-",
	">", "-",
	":", "-",
	"\"", "-",
	"?", "-",
	"*", "-",
)

// feedFilename 판매자 ID와 생성 시각으로 피드 파일 이름을 만듭니다.
// seq가 1보다 크면 같은 초에 생성된 파일과 구분하기 위한 순번을 붙입니다.
//
//	product-feed-a1b2c3-20240301153000.xml
//	product-feed-a1b2c3-20240301153000-2.xml
func feedFilename(merchantID string, at time.Time, seq int) string {
	name := truncateByBytes(sanitizeName(merchantID), maxMerchantNameBytes)
	stamp := at.Format(timestampLayout)

	if seq > 1 {
		return fmt.Sprintf("%s-%s-%s-%d%s", feedFilePrefix, name, stamp, seq, feedFileExt)
	}
	return fmt.Sprintf("%s-%s-%s%s", feedFilePrefix, name, stamp, feedFileExt)
}

// sanitizeName 파일 이름으로 안전하게 사용할 수 있도록 문자열을 kebab-case로 정제합니다.
func sanitizeName(s string) string {
	kebab := strcase.ToKebab(s)

	kebab = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '-'
		}
		return r
	}, kebab)

	return filenameReplacer.Replace(kebab)
}

// truncateByBytes 문자열을 UTF-8 문자 경계를 지키며 limit 바이트 이내로 자릅니다.
func truncateByBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	total := 0
	for total < len(s) {
		_, size := utf8.DecodeRuneInString(s[total:])
		if total+size > limit {
			break
		}
		total += size
	}
	return s[:total]
}
