package schema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// validation 문서 하나를 검증하는 동안의 상태입니다.
type validation struct {
	s          *Schema
	violations []Violation
}

func (v *validation) add(path, format string, args ...any) {
	v.violations = append(v.violations, Violation{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validation) element(n *node, decl *elementDecl, path string) {
	switch {
	case decl.complex != nil:
		v.complex(n, decl.complex, path)
	case decl.simple != nil:
		v.simple(n, decl.simple, path)
	case decl.typeName != "":
		v.typed(n, decl.typeName, path)
	}
}

func (v *validation) typed(n *node, typeName, path string) {
	if ct, ok := v.s.complexTypes[typeName]; ok {
		v.complex(n, ct, path)
		return
	}
	if st, ok := v.s.simpleTypes[typeName]; ok {
		v.simple(n, st, path)
		return
	}
	if _, ok := builtinTypes[typeName]; ok {
		if v.noChildren(n, path) {
			if msg := v.checkValue(typeName, string(n.text)); msg != "" {
				v.add(path, "%s", msg)
			}
		}
		return
	}
	v.add(path, "스키마에 정의되지 않은 타입입니다: '%s'", typeName)
}

func (v *validation) simple(n *node, st *simpleType, path string) {
	if !v.noChildren(n, path) {
		return
	}
	if msg := v.checkSimple(st, string(n.text), 0); msg != "" {
		v.add(path, "%s", msg)
	}
}

func (v *validation) noChildren(n *node, path string) bool {
	if len(n.children) > 0 {
		v.add(path, "단순 타입 요소는 하위 요소를 가질 수 없습니다: <%s>", n.children[0].name.Local)
		return false
	}
	return true
}

func (v *validation) complex(n *node, ct *complexType, path string) {
	v.attributes(n, ct, path)

	if ct.simpleBase != "" {
		if v.noChildren(n, path) {
			if msg := v.checkValue(ct.simpleBase, string(n.text)); msg != "" {
				v.add(path, "%s", msg)
			}
		}
		return
	}

	if !ct.mixed && n.hasContent() {
		v.add(path, "텍스트 값을 가질 수 없는 요소입니다")
	}

	if ct.content == nil {
		if len(n.children) > 0 {
			v.add(path, "하위 요소를 가질 수 없는 요소입니다: <%s>", n.children[0].name.Local)
		}
		return
	}

	m := &matcher{v: v, children: n.children, assigned: make([]*elementDecl, len(n.children))}
	end, ok := m.match(ct.content, 0)

	limit := end
	switch {
	case !ok:
		limit = m.farthest
		found := "요소 끝"
		if m.farthest < len(n.children) {
			found = "<" + n.children[m.farthest].name.Local + ">"
		}
		v.add(path, "필수 요소가 누락되었거나 순서가 올바르지 않습니다 (예상: %s, 발견: %s)", strings.Join(m.expected, " | "), found)

	case end < len(n.children):
		v.add(childPath(path, n.children, end), "이 위치에 올 수 없는 요소입니다")
	}

	for i := 0; i < limit && i < len(n.children); i++ {
		if decl := m.assigned[i]; decl != nil {
			v.element(n.children[i], decl, childPath(path, n.children, i))
		}
	}
}

func (v *validation) attributes(n *node, ct *complexType, path string) {
	for _, a := range ct.attributes {
		value, ok := n.attr(a.name)
		if !ok {
			if a.required {
				v.add(path, "필수 속성이 없습니다: '%s'", a.name)
			}
			continue
		}

		var msg string
		switch {
		case a.simple != nil:
			msg = v.checkSimple(a.simple, value, 0)
		case a.typeName != "":
			msg = v.checkValue(a.typeName, value)
		}
		if msg != "" {
			v.add(path+"/@"+a.name, "%s", msg)
		}
	}

	for _, attr := range n.attrs {
		if attr.Name.Space != "" {
			continue
		}
		declared := slices.ContainsFunc(ct.attributes, func(a attributeDecl) bool { return a.name == attr.Name.Local })
		if !declared {
			v.add(path+"/@"+attr.Name.Local, "선언되지 않은 속성입니다")
		}
	}
}

// checkValue 이름으로 지정된 단순 타입(사용자 정의 또는 내장)에 대해 값을 검사하고, 위반 시 메시지를 반환합니다.
func (v *validation) checkValue(typeName, raw string) string {
	if st, ok := v.s.simpleTypes[typeName]; ok {
		return v.checkSimple(st, raw, 0)
	}
	check, ok := builtinTypes[typeName]
	if !ok {
		return fmt.Sprintf("스키마에 정의되지 않은 타입입니다: '%s'", typeName)
	}

	value := raw
	if !stringTypes[typeName] {
		value = strings.TrimSpace(raw)
	}
	if !check(value) {
		return fmt.Sprintf("'%s' 값은 %s 타입이 아닙니다", value, typeName)
	}
	return ""
}

// maxTypeDepth 단순 타입 제한 체인을 따라갈 최대 깊이 (순환 정의 방지)
const maxTypeDepth = 32

func (v *validation) checkSimple(st *simpleType, raw string, depth int) string {
	if depth > maxTypeDepth {
		return fmt.Sprintf("단순 타입 '%s'의 제한 체인이 너무 깊거나 순환합니다", st.name)
	}

	if st.base != "" {
		var msg string
		if base, ok := v.s.simpleTypes[st.base]; ok {
			msg = v.checkSimple(base, raw, depth+1)
		} else {
			msg = v.checkValue(st.base, raw)
		}
		if msg != "" {
			return msg
		}
	}

	value := raw
	if !stringTypes[v.rootBuiltin(st)] {
		value = strings.TrimSpace(raw)
	}

	if len(st.enums) > 0 && !slices.Contains(st.enums, value) {
		return fmt.Sprintf("허용되지 않은 값입니다: '%s' (허용: %s)", value, strings.Join(st.enums, ", "))
	}

	length := utf8.RuneCountInString(value)
	if st.minLength >= 0 && length < st.minLength {
		return fmt.Sprintf("값의 길이(%d)가 최소 길이(%d)보다 짧습니다", length, st.minLength)
	}
	if st.maxLength >= 0 && length > st.maxLength {
		return fmt.Sprintf("값의 길이(%d)가 최대 길이(%d)를 초과합니다", length, st.maxLength)
	}

	if st.minInclusive != nil || st.maxInclusive != nil {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Sprintf("'%s' 값은 숫자가 아닙니다", value)
		}
		if st.minInclusive != nil && f < *st.minInclusive {
			return fmt.Sprintf("값(%s)이 최솟값(%v)보다 작습니다", value, *st.minInclusive)
		}
		if st.maxInclusive != nil && f > *st.maxInclusive {
			return fmt.Sprintf("값(%s)이 최댓값(%v)보다 큽니다", value, *st.maxInclusive)
		}
	}

	if st.pattern != nil && !st.pattern.MatchString(value) {
		return fmt.Sprintf("'%s' 값이 형식(%s)과 일치하지 않습니다", value, st.patternText)
	}

	return ""
}

// rootBuiltin 단순 타입의 제한 체인을 따라 최종 내장 타입 이름을 반환합니다.
func (v *validation) rootBuiltin(st *simpleType) string {
	for depth := 0; st != nil && depth <= maxTypeDepth; depth++ {
		base, ok := v.s.simpleTypes[st.base]
		if !ok {
			return st.base
		}
		st = base
	}
	return ""
}

// childPath 하위 요소의 경로를 만듭니다. 같은 이름의 형제가 여럿이면 1부터 시작하는 순번을 붙입니다.
func childPath(parent string, siblings []*node, idx int) string {
	name := siblings[idx].name.Local

	total, position := 0, 0
	for i, s := range siblings {
		if s.name.Local != name {
			continue
		}
		total++
		if i <= idx {
			position = total
		}
	}

	if total > 1 {
		return fmt.Sprintf("%s/%s[%d]", parent, name, position)
	}
	return parent + "/" + name
}

// matcher 하위 요소 목록을 내용 모델(sequence, choice, element, any)에 탐욕적으로 대응시킵니다.
type matcher struct {
	v        *validation
	children []*node

	// assigned 하위 요소별로 대응된 요소 선언 (xs:any에 대응된 요소는 nil)
	assigned []*elementDecl

	// 가장 멀리 진행한 위치와 그 위치에서 기대한 요소 이름들
	farthest int
	expected []string
}

func (m *matcher) expect(i int, name string) {
	switch {
	case i > m.farthest:
		m.farthest = i
		m.expected = []string{name}
	case i == m.farthest && !slices.Contains(m.expected, name):
		m.expected = append(m.expected, name)
	}
}

// match 입자를 occurs 범위만큼 반복해 대응시키고, 다음 위치와 성공 여부를 반환합니다.
func (m *matcher) match(p *particle, i int) (int, bool) {
	count := 0
	for p.max == unbounded || count < p.max {
		next, ok := m.matchOnce(p, i)
		if !ok {
			break
		}
		count++
		if next == i {
			// 빈 대응은 반복해도 진전이 없다.
			count = max(count, p.min)
			break
		}
		i = next
	}
	return i, count >= p.min
}

func (m *matcher) matchOnce(p *particle, i int) (int, bool) {
	switch p.kind {
	case particleElement:
		decl := p.element
		if decl == nil {
			d, ok := m.v.s.elements[p.ref]
			if !ok {
				m.expect(i, p.ref+" (정의되지 않은 참조)")
				return i, false
			}
			decl = d
		}
		if i < len(m.children) && m.children[i].name.Space == "" && m.children[i].name.Local == decl.name {
			m.assigned[i] = decl
			return i + 1, true
		}
		m.expect(i, decl.name)
		return i, false

	case particleAny:
		if i < len(m.children) {
			m.assigned[i] = nil
			return i + 1, true
		}
		m.expect(i, "*")
		return i, false

	case particleSequence:
		j := i
		for _, item := range p.items {
			next, ok := m.match(item, j)
			if !ok {
				return i, false
			}
			j = next
		}
		return j, true

	case particleChoice:
		nullable := false
		for _, item := range p.items {
			next, ok := m.match(item, i)
			if ok && next > i {
				return next, true
			}
			nullable = nullable || ok
		}
		return i, nullable
	}

	return i, false
}
