package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// profileFieldName 레코드에서 Amazon 전용 값 묶음(프로필)을 찾을 때 사용하는 필드 이름입니다.
const profileFieldName = "AmazonProfile"

// Getter 필드별 계산 값을 제공하는 조회 대상입니다.
//
// ok는 key에 대한 계산 메서드가 존재하는지를 나타냅니다. ok가 true이면 반환값이 비어 있더라도
// 같은 대상의 일반 속성은 조회하지 않습니다.
type Getter interface {
	Get(key string) (value any, ok bool)
}

// Attributer 조회 키로 일반 속성 값을 제공하는 조회 대상입니다.
type Attributer interface {
	Attr(key string) (value any, ok bool)
}

// ProfileProvider 레코드에 연결된 Amazon 전용 프로필을 제공합니다.
// 프로필 값은 레코드 자신의 값보다 우선합니다.
type ProfileProvider interface {
	AmazonProfile() any
}

// Attrs 조회 키를 그대로 속성 이름으로 사용하는 맵 기반 조회 대상입니다.
type Attrs map[string]any

// Attr Attributer 인터페이스를 구현합니다.
func (a Attrs) Attr(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// Getters 조회 키별 계산 함수를 묶은 조회 대상입니다.
type Getters map[string]func() any

// Get Getter 인터페이스를 구현합니다.
func (g Getters) Get(key string) (any, bool) {
	fn, ok := g[key]
	if !ok || fn == nil {
		return nil, false
	}
	return fn(), true
}

// Object 계산 함수와 일반 속성을 함께 가지는 조회 대상입니다.
type Object struct {
	Getters Getters
	Attrs   Attrs
}

// Get Getter 인터페이스를 구현합니다.
func (o Object) Get(key string) (any, bool) {
	return o.Getters.Get(key)
}

// Attr Attributer 인터페이스를 구현합니다.
func (o Object) Attr(key string) (any, bool) {
	return o.Attrs.Attr(key)
}

// lookup 단일 조회 대상에서 필드 값을 찾습니다.
//
// 계산 메서드(Getter, Get<Name> 메서드)가 존재하면 그 결과를 사용하고, 없으면 일반 속성
// (Attributer, 맵 키, 구조체 필드)을 사용합니다. found는 대상이 해당 필드를 알고 있는지를 나타냅니다.
func lookup(target any, name, key string) (value any, found bool) {
	if target == nil {
		return nil, false
	}

	if g, ok := target.(Getter); ok {
		if v, ok := g.Get(key); ok {
			return v, true
		}
	}
	if a, ok := target.(Attributer); ok {
		if v, ok := a.Attr(key); ok {
			return v, true
		}
	}

	switch m := target.(type) {
	case map[string]any:
		if v, ok := m[key]; ok {
			return v, true
		}
		if v, ok := m[name]; ok {
			return v, true
		}
		return nil, false
	case map[string]string:
		if v, ok := m[key]; ok {
			return v, true
		}
		if v, ok := m[name]; ok {
			return v, true
		}
		return nil, false
	}

	return lookupStruct(target, name, key)
}

// lookupStruct 구조체(또는 구조체 포인터)에서 Get<Name> 메서드 또는 필드로 값을 찾습니다.
func lookupStruct(target any, name, key string) (any, bool) {
	rv := reflect.ValueOf(target)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		if rv.Elem().Kind() != reflect.Pointer {
			break
		}
		rv = rv.Elem()
	}

	switch {
	case rv.Kind() == reflect.Struct:
		// 포인터 리시버 메서드까지 조회할 수 있도록 주소를 가질 수 있는 사본을 만든다.
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		rv = ptr
	case rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Struct:
	default:
		return nil, false
	}

	info := typeInfoOf(rv.Type())

	if idx, ok := info.getters[name]; ok {
		out := rv.Method(idx).Call(nil)
		return out[0].Interface(), true
	}

	idx, ok := info.fields[name]
	if !ok {
		idx, ok = info.fields[key]
	}
	if !ok {
		return nil, false
	}

	fv, err := rv.Elem().FieldByIndexErr(idx)
	if err != nil {
		// nil인 임베디드 포인터를 거치는 필드
		return nil, false
	}
	return fv.Interface(), true
}

// typeInfo 구조체 타입별 조회 정보입니다.
type typeInfo struct {
	// getters Get<Name> 메서드 이름(Name) -> 메서드 인덱스
	getters map[string]int

	// fields feed 태그, 필드 이름, 조회 키 -> 필드 인덱스
	fields map[string][]int
}

var typeInfoCache sync.Map // map[reflect.Type]*typeInfo

// typeInfoOf 구조체 포인터 타입의 조회 정보를 반환합니다. 결과는 타입별로 캐시됩니다.
func typeInfoOf(ptrType reflect.Type) *typeInfo {
	if v, ok := typeInfoCache.Load(ptrType); ok {
		return v.(*typeInfo)
	}

	info := &typeInfo{
		getters: make(map[string]int),
		fields:  make(map[string][]int),
	}

	for i := 0; i < ptrType.NumMethod(); i++ {
		m := ptrType.Method(i)
		// 리시버를 제외한 인자가 없고 반환값이 하나인 메서드만 계산 메서드로 본다.
		if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
			continue
		}
		if name, ok := strings.CutPrefix(m.Name, "Get"); ok && name != "" {
			info.getters[name] = m.Index
		}
	}

	for _, sf := range reflect.VisibleFields(ptrType.Elem()) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}

		tag := strings.SplitN(sf.Tag.Get("feed"), ",", 2)[0]
		if tag == "-" {
			continue
		}
		if tag != "" {
			info.fields[tag] = sf.Index
		}
		if _, exists := info.fields[sf.Name]; !exists {
			info.fields[sf.Name] = sf.Index
		}
		if key := AccessorKey(sf.Name); key != sf.Name {
			if _, exists := info.fields[key]; !exists {
				info.fields[key] = sf.Index
			}
		}
	}

	actual, _ := typeInfoCache.LoadOrStore(ptrType, info)
	return actual.(*typeInfo)
}

// profileOf 레코드의 Amazon 프로필을 반환합니다. 프로필이 없으면 nil입니다.
func profileOf(record any) any {
	if p, ok := record.(ProfileProvider); ok {
		return p.AmazonProfile()
	}

	v, found := lookup(record, profileFieldName, AccessorKey(profileFieldName))
	if !found || !isPresent(v) {
		return nil
	}
	return v
}
