package mapper

import (
	"regexp"
	"strings"
	"sync"
)

var (
	// 단어 경계 1: 대문자 하나와 소문자들로 이루어진 단어의 앞 (예: "dProduct" -> "d_Product")
	capitalizedRunRe = regexp.MustCompile(`(.)([A-Z][a-z]+)`)

	// 단어 경계 2: 소문자/숫자 뒤에 대문자가 오는 위치 (예: "tID" -> "t_ID")
	lowerUpperRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)

	accessorKeyCache sync.Map // map[string]string
)

// AccessorKey UpperCamelCase 필드 이름을 소문자 snake_case 조회 키로 변환합니다.
//
//	StandardProductID   -> standard_product_id
//	SKU                 -> sku
//	ItemPackageQuantity -> item_package_quantity
//
// 변환은 결정적이며, 이미 변환된 키를 다시 변환해도 결과가 바뀌지 않습니다.
func AccessorKey(name string) string {
	if v, ok := accessorKeyCache.Load(name); ok {
		return v.(string)
	}

	key := capitalizedRunRe.ReplaceAllString(name, "${1}_${2}")
	key = lowerUpperRe.ReplaceAllString(key, "${1}_${2}")
	key = strings.ToLower(key)

	accessorKeyCache.Store(name, key)
	return key
}
