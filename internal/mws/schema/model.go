package schema

import (
	"regexp"
	"strconv"
	"strings"
)

// xsdNamespace XML Schema 정의 문서의 네임스페이스
const xsdNamespace = "http://www.w3.org/2001/XMLSchema"

// unbounded maxOccurs="unbounded"를 나타내는 값
const unbounded = -1

type occurs struct {
	min int
	max int
}

type elementDecl struct {
	name     string
	typeName string
	complex  *complexType
	simple   *simpleType
}

type particleKind int

const (
	particleElement particleKind = iota
	particleSequence
	particleChoice
	particleAny
)

type particle struct {
	kind particleKind
	occurs

	element *elementDecl // particleElement (로컬 선언)
	ref     string       // particleElement (전역 선언 참조)
	items   []*particle  // particleSequence, particleChoice
}

type attributeDecl struct {
	name     string
	typeName string
	simple   *simpleType
	required bool
}

type complexType struct {
	name       string
	content    *particle
	attributes []attributeDecl

	// simpleContent 확장인 경우 텍스트 값의 기반 타입
	simpleBase string
	mixed      bool
}

type simpleType struct {
	name string
	base string

	enums        []string
	minLength    int
	maxLength    int
	minInclusive *float64
	maxInclusive *float64
	pattern      *regexp.Regexp
	patternText  string
}

// localName "xsd:string" 형태의 QName에서 접두사를 제거합니다.
func localName(qname string) string {
	if _, local, found := strings.Cut(qname, ":"); found {
		return local
	}
	return qname
}

// compiler 스키마 문서의 노드를 선언 모델로 변환해 Schema에 등록합니다.
type compiler struct {
	s    *Schema
	file string
}

func (c *compiler) schema(root *node) error {
	if root.name.Local != "schema" || root.name.Space != xsdNamespace {
		return newInvalidSchema("%s: 최상위 요소가 xs:schema가 아닙니다", c.file)
	}

	for _, n := range root.children {
		name, _ := n.attr("name")

		switch n.name.Local {
		case "element":
			decl, err := c.element(n)
			if err != nil {
				return err
			}
			c.s.elements[decl.name] = decl

		case "complexType":
			if name == "" {
				return newInvalidSchema("%s: 전역 complexType에 name 속성이 없습니다", c.file)
			}
			ct, err := c.complexType(n)
			if err != nil {
				return err
			}
			c.s.complexTypes[name] = ct

		case "simpleType":
			if name == "" {
				return newInvalidSchema("%s: 전역 simpleType에 name 속성이 없습니다", c.file)
			}
			st, err := c.simpleType(n)
			if err != nil {
				return err
			}
			c.s.simpleTypes[name] = st
		}
	}

	return nil
}

func (c *compiler) element(n *node) (*elementDecl, error) {
	name, _ := n.attr("name")
	if name == "" {
		return nil, newInvalidSchema("%s: element 선언에 name 속성이 없습니다", c.file)
	}

	decl := &elementDecl{name: name}
	if t, ok := n.attr("type"); ok {
		decl.typeName = localName(t)
	}

	for _, child := range n.children {
		switch child.name.Local {
		case "complexType":
			ct, err := c.complexType(child)
			if err != nil {
				return nil, err
			}
			decl.complex = ct
		case "simpleType":
			st, err := c.simpleType(child)
			if err != nil {
				return nil, err
			}
			decl.simple = st
		}
	}

	return decl, nil
}

func (c *compiler) occurs(n *node) (occurs, error) {
	o := occurs{min: 1, max: 1}

	if v, ok := n.attr("minOccurs"); ok {
		i, err := strconv.Atoi(v)
		if err != nil || i < 0 {
			return o, newInvalidSchema("%s: minOccurs 값이 올바르지 않습니다: '%s'", c.file, v)
		}
		o.min = i
	}
	if v, ok := n.attr("maxOccurs"); ok {
		if v == "unbounded" {
			o.max = unbounded
		} else {
			i, err := strconv.Atoi(v)
			if err != nil || i < 0 {
				return o, newInvalidSchema("%s: maxOccurs 값이 올바르지 않습니다: '%s'", c.file, v)
			}
			o.max = i
		}
	}
	if o.max != unbounded && o.max < o.min {
		return o, newInvalidSchema("%s: maxOccurs가 minOccurs보다 작습니다", c.file)
	}

	return o, nil
}

// particle element, sequence, choice, any 노드를 내용 모델 입자로 변환합니다.
// 그 외의 노드(annotation 등)는 nil을 반환합니다.
func (c *compiler) particle(n *node) (*particle, error) {
	var p *particle

	switch n.name.Local {
	case "element":
		p = &particle{kind: particleElement}
		if ref, ok := n.attr("ref"); ok {
			p.ref = localName(ref)
		} else {
			decl, err := c.element(n)
			if err != nil {
				return nil, err
			}
			p.element = decl
		}

	case "sequence", "choice":
		p = &particle{kind: particleSequence}
		if n.name.Local == "choice" {
			p.kind = particleChoice
		}
		for _, child := range n.children {
			item, err := c.particle(child)
			if err != nil {
				return nil, err
			}
			if item != nil {
				p.items = append(p.items, item)
			}
		}

	case "any":
		p = &particle{kind: particleAny}

	default:
		return nil, nil
	}

	o, err := c.occurs(n)
	if err != nil {
		return nil, err
	}
	p.occurs = o

	return p, nil
}

func (c *compiler) complexType(n *node) (*complexType, error) {
	ct := &complexType{}
	ct.name, _ = n.attr("name")
	if v, ok := n.attr("mixed"); ok {
		ct.mixed = v == "true" || v == "1"
	}

	for _, child := range n.children {
		switch child.name.Local {
		case "sequence", "choice":
			p, err := c.particle(child)
			if err != nil {
				return nil, err
			}
			ct.content = p

		case "attribute":
			a, err := c.attribute(child)
			if err != nil {
				return nil, err
			}
			ct.attributes = append(ct.attributes, a)

		case "simpleContent":
			for _, ext := range child.children {
				if ext.name.Local != "extension" && ext.name.Local != "restriction" {
					continue
				}
				base, _ := ext.attr("base")
				if base == "" {
					return nil, newInvalidSchema("%s: simpleContent에 base 타입이 없습니다", c.file)
				}
				ct.simpleBase = localName(base)
				for _, attr := range ext.children {
					if attr.name.Local != "attribute" {
						continue
					}
					a, err := c.attribute(attr)
					if err != nil {
						return nil, err
					}
					ct.attributes = append(ct.attributes, a)
				}
			}
		}
	}

	return ct, nil
}

func (c *compiler) attribute(n *node) (attributeDecl, error) {
	name, _ := n.attr("name")
	if name == "" {
		return attributeDecl{}, newInvalidSchema("%s: attribute 선언에 name 속성이 없습니다", c.file)
	}

	a := attributeDecl{name: name}
	if t, ok := n.attr("type"); ok {
		a.typeName = localName(t)
	}
	if use, _ := n.attr("use"); use == "required" {
		a.required = true
	}
	for _, child := range n.children {
		if child.name.Local == "simpleType" {
			st, err := c.simpleType(child)
			if err != nil {
				return attributeDecl{}, err
			}
			a.simple = st
		}
	}

	return a, nil
}

func (c *compiler) simpleType(n *node) (*simpleType, error) {
	st := &simpleType{minLength: -1, maxLength: -1}
	st.name, _ = n.attr("name")

	for _, r := range n.children {
		if r.name.Local != "restriction" {
			continue
		}
		base, _ := r.attr("base")
		st.base = localName(base)

		for _, facet := range r.children {
			value, _ := facet.attr("value")

			switch facet.name.Local {
			case "enumeration":
				st.enums = append(st.enums, value)

			case "minLength", "maxLength", "length":
				i, err := strconv.Atoi(value)
				if err != nil || i < 0 {
					return nil, newInvalidSchema("%s: %s 값이 올바르지 않습니다: '%s'", c.file, facet.name.Local, value)
				}
				switch facet.name.Local {
				case "minLength":
					st.minLength = i
				case "maxLength":
					st.maxLength = i
				default:
					st.minLength, st.maxLength = i, i
				}

			case "minInclusive", "maxInclusive":
				f, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, newInvalidSchema("%s: %s 값이 올바르지 않습니다: '%s'", c.file, facet.name.Local, value)
				}
				if facet.name.Local == "minInclusive" {
					st.minInclusive = &f
				} else {
					st.maxInclusive = &f
				}

			case "pattern":
				re, err := regexp.Compile("^(?:" + value + ")$")
				if err != nil {
					return nil, newInvalidSchema("%s: pattern 값을 해석할 수 없습니다: '%s'", c.file, value)
				}
				st.pattern = re
				st.patternText = value
			}
		}
	}

	return st, nil
}
