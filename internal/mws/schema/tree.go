package schema

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// node XML 문서의 요소 하나를 순서 그대로 보관하는 트리 노드입니다.
// XSD 문서와 검증 대상 문서 모두 이 형태로 읽습니다.
type node struct {
	name     xml.Name
	attrs    []xml.Attr
	text     []byte
	children []*node
}

// attr 네임스페이스가 없는 속성의 값을 반환합니다.
func (n *node) attr(local string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// hasContent 공백이 아닌 텍스트를 가지고 있는지 여부를 반환합니다.
func (n *node) hasContent() bool {
	return strings.TrimSpace(string(n.text)) != ""
}

// readTree XML 문서 전체를 읽어 루트 노드를 반환합니다.
// 선언된 문자 인코딩이 UTF-8이 아니면 해당 인코딩으로 디코딩합니다.
func readTree(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *node
		stack []*node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			t = t.Copy()
			n := &node{name: t.Name, attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else {
				root = n
			}
			stack = append(stack, n)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.text = append(top.text, t...)
			}
		}
	}

	if root == nil {
		return nil, &xml.SyntaxError{Msg: "루트 요소가 없습니다", Line: 1}
	}
	return root, nil
}
