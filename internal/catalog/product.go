package catalog

import (
	"encoding/json"

	"github.com/darkkaiser/mws-feed/internal/mws/mapper"
	"github.com/tidwall/gjson"
)

// Product 카탈로그의 상품 하나입니다.
//
// 모든 키는 속성 조회 키(snake_case)로 정규화되어 보관되므로 "ShippingWeight"와 "shipping_weight"는
// 같은 속성을 가리킵니다. amazon_profile 객체는 필드 조회 시 가장 먼저 참조되는 프로필이 되고,
// operation_type 키는 속성이 아닌 상품별 작업 유형으로 분리됩니다.
type Product struct {
	index     int
	attrs     map[string]any
	profile   map[string]any
	operation string
}

var (
	_ mapper.Attributer      = (*Product)(nil)
	_ mapper.ProfileProvider = (*Product)(nil)
)

// Attr 속성 값을 반환합니다. key는 대소문자 표기와 관계없이 정규화되어 조회됩니다.
func (p *Product) Attr(key string) (any, bool) {
	v, ok := p.attrs[mapper.AccessorKey(key)]
	return v, ok
}

// AmazonProfile 상품의 Amazon 프로필을 반환합니다. 프로필이 없으면 nil입니다.
func (p *Product) AmazonProfile() any {
	if p.profile == nil {
		return nil
	}
	return p.profile
}

// Operation 상품에 지정된 작업 유형을 반환합니다. 지정되지 않았으면 빈 문자열입니다.
func (p *Product) Operation() string {
	return p.operation
}

// Index 카탈로그 안에서 상품의 순번(0부터 시작)을 반환합니다.
func (p *Product) Index() int {
	return p.index
}

// SKU 프로필 또는 상품 속성의 SKU 값을 반환합니다.
func (p *Product) SKU() string {
	for _, source := range []map[string]any{p.profile, p.attrs} {
		if v, ok := source["sku"]; ok && v != nil {
			return mapper.Serialize(v)
		}
	}
	return ""
}

// newProduct gjson 객체를 Product로 변환합니다.
func newProduct(index int, obj gjson.Result) (*Product, error) {
	p := &Product{index: index}

	attrs, err := normalizedObject(index, obj, func(key string, value gjson.Result) (bool, error) {
		switch key {
		case profileKey:
			if !value.IsObject() {
				return false, nil
			}
			profile, err := normalizedObject(index, value, nil)
			if err != nil {
				return true, err
			}
			p.profile = profile
			return true, nil

		case operationKey:
			p.operation = value.String()
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	p.attrs = attrs
	return p, nil
}

// normalizedObject 객체의 최상위 키를 속성 조회 키로 정규화한 맵을 반환합니다.
// intercept가 true를 반환한 키는 맵에 포함하지 않습니다.
func normalizedObject(index int, obj gjson.Result, intercept func(key string, value gjson.Result) (bool, error)) (map[string]any, error) {
	attrs := make(map[string]any)

	var err error
	obj.ForEach(func(k, v gjson.Result) bool {
		key := mapper.AccessorKey(k.String())

		if intercept != nil {
			var handled bool
			if handled, err = intercept(key, v); err != nil || handled {
				return err == nil
			}
		}

		if _, dup := attrs[key]; dup {
			err = NewErrDuplicateAttribute(index, key)
			return false
		}
		attrs[key] = valueOf(v)
		return true
	})
	if err != nil {
		return nil, err
	}

	return attrs, nil
}

// valueOf gjson 값을 매퍼가 직렬화할 수 있는 Go 값으로 변환합니다.
//
// 숫자는 원문 그대로의 json.Number로 보관하여 큰 정수나 소수 표기가 변형되지 않도록 합니다.
// 중첩 객체의 키는 정규화하지 않습니다. (하위 요소 이름으로 사용됩니다)
func valueOf(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return json.Number(r.Raw)
	case gjson.String:
		return r.Str
	}

	if r.IsArray() {
		items := r.Array()
		values := make([]any, 0, len(items))
		for _, item := range items {
			values = append(values, valueOf(item))
		}
		return values
	}

	values := make(map[string]any)
	r.ForEach(func(k, v gjson.Result) bool {
		values[k.String()] = valueOf(v)
		return true
	})
	return values
}
