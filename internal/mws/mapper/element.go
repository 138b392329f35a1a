package mapper

import (
	"encoding/xml"
)

// Attr 요소의 속성 하나입니다. (예: unitOfMeasure="LB")
type Attr struct {
	Name  string
	Value string
}

// Element 피드 문서의 XML 요소 하나를 표현합니다.
//
// 텍스트 값 또는 하위 요소 목록 중 하나를 가지며, 하위 요소가 있으면 텍스트는 무시됩니다.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []Element
}

// MarshalXML xml.Marshaler 인터페이스를 구현합니다. 요소 이름은 Name을 따릅니다.
func (e Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if len(e.Children) > 0 {
		for _, child := range e.Children {
			if err := enc.Encode(child); err != nil {
				return err
			}
		}
	} else if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

// UnmarshalXML xml.Unmarshaler 인터페이스를 구현합니다.
func (e *Element) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	e.Name = start.Name.Local
	e.Attrs = nil
	e.Text = ""
	e.Children = nil

	for _, a := range start.Attr {
		if a.Name.Space == "" {
			e.Attrs = append(e.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
		}
	}

	var text []byte
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var child Element
			if err := child.UnmarshalXML(dec, t); err != nil {
				return err
			}
			e.Children = append(e.Children, child)
		case xml.CharData:
			text = append(text, t...)
		case xml.EndElement:
			if len(e.Children) == 0 {
				e.Text = string(text)
			}
			return nil
		}
	}
}

// Attr 이름이 일치하는 속성의 값을 반환합니다.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child 이름이 일치하는 첫 번째 하위 요소를 반환합니다.
func (e Element) Child(name string) (Element, bool) {
	for _, c := range e.Children {
		if c.Name == name {
			return c, true
		}
	}
	return Element{}, false
}

// ChildrenNamed 이름이 일치하는 모든 하위 요소를 문서 순서대로 반환합니다.
func (e Element) ChildrenNamed(name string) []Element {
	var found []Element
	for _, c := range e.Children {
		if c.Name == name {
			found = append(found, c)
		}
	}
	return found
}

// ChildNames 하위 요소 이름을 문서 순서대로 반환합니다.
func (e Element) ChildNames() []string {
	names := make([]string, 0, len(e.Children))
	for _, c := range e.Children {
		names = append(names, c.Name)
	}
	return names
}
