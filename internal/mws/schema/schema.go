// Package schema Amazon 피드 문서 검증에 필요한 XML Schema(XSD)의 부분 집합을 읽고 문서를 검증합니다.
//
// 지원 범위:
//   - xs:include
//   - 전역/로컬 xs:element (name, type, ref, minOccurs, maxOccurs)
//   - xs:complexType (xs:sequence, xs:choice, xs:any, xs:attribute, xs:simpleContent)
//   - xs:simpleType 제한 (enumeration, length, minLength, maxLength, minInclusive, maxInclusive, pattern)
//   - 문자열, 정수, 실수, boolean, date, dateTime 계열 내장 타입
package schema

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Violation 문서가 스키마를 위반한 지점 하나를 나타냅니다.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// String fmt.Stringer 인터페이스를 구현합니다.
func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Schema 읽어들인 스키마 선언의 집합입니다. 생성 이후 읽기 전용이므로 여러 고루틴에서 공유해도 안전합니다.
type Schema struct {
	elements     map[string]*elementDecl
	complexTypes map[string]*complexType
	simpleTypes  map[string]*simpleType

	files []string
}

func newSchema() *Schema {
	return &Schema{
		elements:     make(map[string]*elementDecl),
		complexTypes: make(map[string]*complexType),
		simpleTypes:  make(map[string]*simpleType),
	}
}

// ParseFile 파일 시스템의 스키마 파일과 그 파일이 포함(include)하는 파일들을 읽습니다.
// 포함 파일의 경로는 스키마 파일이 있는 디렉토리를 기준으로 해석합니다.
func ParseFile(filename string) (*Schema, error) {
	return ParseFS(os.DirFS(filepath.Dir(filename)), filepath.Base(filename))
}

// ParseFS fsys의 name 스키마 파일과 그 파일이 포함하는 파일들을 읽습니다.
func ParseFS(fsys fs.FS, name string) (*Schema, error) {
	s := newSchema()
	if err := s.include(fsys, path.Clean(name), make(map[string]bool)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) include(fsys fs.FS, name string, visited map[string]bool) error {
	if visited[name] {
		return nil
	}
	visited[name] = true

	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewErrSchemaNotFound(name, err)
		}
		return NewErrSchemaReadFailed(name, err)
	}
	defer f.Close()

	root, err := readTree(f)
	if err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			return NewErrSchemaParseFailed(name, err)
		}
		return NewErrSchemaReadFailed(name, err)
	}

	c := compiler{s: s, file: name}
	if err := c.schema(root); err != nil {
		return NewErrSchemaParseFailed(name, err)
	}
	s.files = append(s.files, name)

	for _, n := range root.children {
		if n.name.Local != "include" {
			continue
		}
		loc, _ := n.attr("schemaLocation")
		if loc == "" {
			return NewErrSchemaParseFailed(name, newInvalidSchema("%s: include에 schemaLocation 속성이 없습니다", name))
		}
		if err := s.include(fsys, path.Join(path.Dir(name), loc), visited); err != nil {
			return err
		}
	}

	return nil
}

// Files 읽어들인 스키마 파일의 목록을 읽은 순서대로 반환합니다.
func (s *Schema) Files() []string {
	return append([]string(nil), s.files...)
}

// HasElement 전역 요소 name이 선언되어 있는지 여부를 반환합니다.
func (s *Schema) HasElement(name string) bool {
	_, ok := s.elements[name]
	return ok
}

// Validate 문서를 읽어 스키마 위반 목록을 반환합니다.
//
// XML 문법 오류도 위반으로 보고하며, 에러는 문서를 읽는 중 I/O 오류가 발생한 경우에만 반환합니다.
func (s *Schema) Validate(r io.Reader) ([]Violation, error) {
	root, err := readTree(r)
	if err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			return []Violation{{Path: "/", Message: fmt.Sprintf("XML 문법 오류: %v", syntaxErr)}}, nil
		}
		return nil, NewErrDocumentReadFailed(err)
	}

	v := &validation{s: s}

	rootPath := "/" + root.name.Local
	decl, ok := s.elements[root.name.Local]
	if !ok || root.name.Space != "" {
		v.add(rootPath, "스키마에 선언되지 않은 루트 요소입니다")
		return v.violations, nil
	}

	v.element(root, decl, rootPath)
	return v.violations, nil
}
