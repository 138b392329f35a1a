package schema

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	applog "github.com/darkkaiser/mws-feed/pkg/log"
)

// component 스키마 로그의 컴포넌트 이름
const component = "mws.schema"

// Loader 스키마를 처음 필요할 때 한 번 읽고, 성공한 결과를 보관합니다.
//
// 읽기에 실패한 경우 결과를 보관하지 않으므로 다음 Load 호출에서 다시 시도합니다.
// 여러 고루틴에서 동시에 호출해도 안전합니다.
type Loader struct {
	fsys fs.FS
	name string

	mu     sync.Mutex
	schema *Schema
}

// NewLoader 파일 시스템 경로의 스키마를 읽는 Loader를 생성합니다.
func NewLoader(filename string) *Loader {
	return &Loader{
		fsys: os.DirFS(filepath.Dir(filename)),
		name: filepath.Base(filename),
	}
}

// NewFSLoader fsys 안의 스키마를 읽는 Loader를 생성합니다. (예: embed.FS)
func NewFSLoader(fsys fs.FS, name string) *Loader {
	return &Loader{
		fsys: fsys,
		name: name,
	}
}

// Name 진입점 스키마 파일의 이름을 반환합니다.
func (l *Loader) Name() string {
	return l.name
}

// Load 스키마를 반환합니다. 최초 호출 시 파일을 읽고 이후에는 보관된 결과를 반환합니다.
func (l *Loader) Load() (*Schema, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.schema != nil {
		return l.schema, nil
	}

	s, err := ParseFS(l.fsys, l.name)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"schema": l.name,
			"error":  err,
		}).Error("스키마 로드 실패")
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"schema":   l.name,
		"files":    s.Files(),
		"elements": len(s.elements),
		"types":    len(s.complexTypes) + len(s.simpleTypes),
	}).Info("스키마 로드 완료")

	l.schema = s
	return s, nil
}

// Loaded 스키마가 이미 로드되어 보관 중인지 여부를 반환합니다.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.schema != nil
}
