// Package mapper 상품 레코드를 Amazon MWS Product 피드의 XML 요소로 변환합니다.
//
// 각 필드 값은 다음 순서로 조회하며, 처음으로 값이 존재하는 단계의 결과를 사용합니다.
//
//  1. 레코드의 Amazon 프로필 (ProfileProvider 또는 amazon_profile 속성)
//  2. 레코드 자신
//  3. 매퍼의 기본값 원천 (WithDefaults)
//
// 각 단계에서는 계산 메서드(Getter, Get<Name> 메서드)가 일반 속성보다 우선합니다.
// 값을 찾지 못한 필드는 에러 없이 출력에서 생략됩니다.
package mapper

import (
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode"

	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/iancoleman/strcase"
)

// component 매퍼 로그의 컴포넌트 이름
const component = "mws.mapper"

const (
	// ProductElement 상품 요소의 이름
	ProductElement = "Product"

	// DescriptionDataElement 설명 속성을 묶는 하위 요소의 이름
	DescriptionDataElement = "DescriptionData"
)

// 맵 값을 요소로 변환할 때 속성과 텍스트를 나타내는 키
const (
	attrPrefix = "@"
	textKey    = "#text"
)

// xmlNameRe 필드 이름으로 허용되는 XML 요소 이름 (네임스페이스 접두사 없음)
var xmlNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// compiledField 조회 키를 미리 계산해 둔 필드 기술자
type compiledField struct {
	Field
	key string
}

// Mapper 상품 레코드를 Product 요소로 변환합니다.
// 생성 이후에는 상태가 바뀌지 않으므로 여러 고루틴에서 공유해도 안전합니다.
type Mapper struct {
	base        []compiledField
	description []compiledField
	defaults    any
}

type options struct {
	base        []Field
	description []Field
	defaults    any
	serializers map[string]Serializer
}

// Option Mapper 생성 옵션입니다.
type Option func(*options)

// WithBaseFields 기본 속성 목록을 교체합니다.
func WithBaseFields(fields ...Field) Option {
	return func(o *options) {
		o.base = fields
	}
}

// WithDescriptionFields 설명 속성 목록을 교체합니다.
func WithDescriptionFields(fields ...Field) Option {
	return func(o *options) {
		o.description = fields
	}
}

// WithDefaults 레코드와 프로필 모두 값을 갖지 않을 때 사용할 기본값 원천을 지정합니다.
// 원천은 맵, Getter/Attributer 구현체, 구조체 중 무엇이든 될 수 있습니다.
func WithDefaults(source any) Option {
	return func(o *options) {
		o.defaults = source
	}
}

// WithSerializer 이름이 name인 필드의 직렬화 함수를 교체합니다. (예: Description에 PlainText 적용)
// 필드 목록 옵션과의 순서에 관계없이 최종 목록에 적용되며, 어느 목록에도 없는 이름이면 New가 에러를 반환합니다.
func WithSerializer(name string, serialize Serializer) Option {
	return func(o *options) {
		if o.serializers == nil {
			o.serializers = make(map[string]Serializer)
		}
		o.serializers[name] = serialize
	}
}

// New 새로운 Mapper를 생성합니다. 목록 안에 이름이 중복되거나 잘못된 필드가 있으면 에러를 반환합니다.
func New(opts ...Option) (*Mapper, error) {
	o := options{
		base:        BaseFields(),
		description: DescriptionFields(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := compileFields("기본 속성", o.base)
	if err != nil {
		return nil, err
	}
	description, err := compileFields("설명 속성", o.description)
	if err != nil {
		return nil, err
	}
	if err := applySerializers(o.serializers, base, description); err != nil {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"base_fields":        len(base),
		"description_fields": len(description),
		"has_defaults":       o.defaults != nil,
	}).Debug("상품 매퍼 생성 완료")

	return &Mapper{
		base:        base,
		description: description,
		defaults:    o.defaults,
	}, nil
}

// MustNew New와 같지만 에러가 발생하면 패닉을 일으킵니다.
func MustNew(opts ...Option) *Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func compileFields(list string, fields []Field) ([]compiledField, error) {
	seen := make(map[string]struct{}, len(fields))
	compiled := make([]compiledField, 0, len(fields))
	for _, f := range fields {
		if !xmlNameRe.MatchString(f.Name) {
			return nil, NewErrInvalidFieldName(list, f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, NewErrDuplicateField(list, f.Name)
		}
		seen[f.Name] = struct{}{}
		compiled = append(compiled, compiledField{Field: f, key: AccessorKey(f.Name)})
	}
	return compiled, nil
}

func applySerializers(serializers map[string]Serializer, lists ...[]compiledField) error {
	for name, serialize := range serializers {
		applied := false
		for _, list := range lists {
			for i := range list {
				if list[i].Name == name {
					list[i].Serialize = serialize
					applied = true
				}
			}
		}
		if !applied {
			return NewErrUnknownField(name)
		}
	}
	return nil
}

// BaseFields 매퍼가 사용하는 기본 속성 목록의 사본을 반환합니다.
func (m *Mapper) BaseFields() []Field {
	return fieldsFrom(m.base)
}

// DescriptionFields 매퍼가 사용하는 설명 속성 목록의 사본을 반환합니다.
func (m *Mapper) DescriptionFields() []Field {
	return fieldsFrom(m.description)
}

func fieldsFrom(compiled []compiledField) []Field {
	fields := make([]Field, len(compiled))
	for i, c := range compiled {
		fields[i] = c.Field
	}
	return fields
}

// Resolve 레코드에서 필드 값을 조회합니다. 값이 없으면 nil을 반환합니다.
func (m *Mapper) Resolve(record any, f Field) any {
	if f.Resolve != nil {
		return f.Resolve(record)
	}
	return m.resolve(record, f.Name, AccessorKey(f.Name))
}

func (m *Mapper) resolve(record any, name, key string) any {
	for _, target := range [...]any{profileOf(record), record, m.defaults} {
		if v, found := lookup(target, name, key); found && isPresent(v) {
			return v
		}
	}
	return nil
}

// BuildProduct 레코드를 Product 요소로 변환합니다.
// 기본 속성이 먼저 나오고, 마지막에 설명 속성을 담은 DescriptionData 요소가 하나 붙습니다.
func (m *Mapper) BuildProduct(record any) Element {
	product := Element{Name: ProductElement}
	product.Children = m.appendFields(product.Children, record, m.base)

	description := Element{Name: DescriptionDataElement}
	description.Children = m.appendFields(description.Children, record, m.description)

	product.Children = append(product.Children, description)
	return product
}

func (m *Mapper) appendFields(elems []Element, record any, fields []compiledField) []Element {
	for _, f := range fields {
		var v any
		if f.Resolve != nil {
			v = f.Resolve(record)
		} else {
			v = m.resolve(record, f.Name, f.key)
		}

		serialize := f.Serialize
		if serialize == nil {
			serialize = Serialize
		}
		elems = appendValue(elems, f.Name, v, serialize)
	}
	return elems
}

// appendValue 값을 name 요소로 변환해 추가합니다.
//
// 슬라이스는 값이 있는 항목마다 같은 이름의 요소를 반복하고, 맵과 []Element는 하위 요소를 가진
// 하나의 요소가 됩니다. 빈 값은 요소를 만들지 않습니다.
func appendValue(elems []Element, name string, v any, serialize Serializer) []Element {
	if !isPresent(v) {
		return elems
	}

	switch t := v.(type) {
	case string:
		return append(elems, Element{Name: name, Text: t})
	case Element:
		t.Name = name
		return append(elems, t)
	case []Element:
		return append(elems, Element{Name: name, Children: t})
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return elems
		}
		rv = rv.Elem()
	}

	switch {
	case (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8:
		for i := 0; i < rv.Len(); i++ {
			elems = appendValue(elems, name, rv.Index(i).Interface(), serialize)
		}
		return elems

	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		e := mapElement(name, rv, serialize)
		if !isPresent(e) {
			return elems
		}
		return append(elems, e)
	}

	text := serialize(v)
	if text == "" {
		return elems
	}
	return append(elems, Element{Name: name, Text: text})
}

// mapElement 맵을 name 요소로 변환합니다.
//
// "@"로 시작하는 키는 속성, "#text" 키는 텍스트 값, 나머지 키는 하위 요소가 됩니다.
// 하위 요소와 속성의 출력 순서는 키의 사전순입니다.
func mapElement(name string, rv reflect.Value, serialize Serializer) Element {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	e := Element{Name: name}
	for _, k := range keys {
		v := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
		if !isPresent(v) {
			continue
		}

		switch {
		case k == textKey:
			e.Text = textOf(v, serialize)
		case strings.HasPrefix(k, attrPrefix):
			if text := textOf(v, serialize); text != "" {
				e.Attrs = append(e.Attrs, Attr{Name: strings.TrimPrefix(k, attrPrefix), Value: text})
			}
		default:
			e.Children = appendValue(e.Children, elementName(k), v, serialize)
		}
	}
	return e
}

func textOf(v any, serialize Serializer) string {
	if s, ok := v.(string); ok {
		return s
	}
	return serialize(v)
}

// elementName 맵 키를 요소 이름으로 변환합니다. 대문자로 시작하는 키는 그대로 사용합니다.
func elementName(key string) string {
	if r := []rune(key); len(r) > 0 && unicode.IsUpper(r[0]) {
		return key
	}
	return strcase.ToCamel(strings.TrimSpace(key))
}
