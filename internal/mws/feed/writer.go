// Package feed 상품 레코드를 Amazon MWS Product 피드 문서(AmazonEnvelope)로 조립합니다.
package feed

import (
	"bytes"
	"encoding/xml"
	"sync"

	"github.com/darkkaiser/mws-feed/internal/mws/mapper"
	"github.com/darkkaiser/mws-feed/internal/mws/schema"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/darkkaiser/mws-feed/xsd"
)

// component 피드 로그의 컴포넌트 이름
const component = "mws.feed"

// ProductMapper 레코드를 Product 요소로 변환합니다.
type ProductMapper interface {
	BuildProduct(record any) mapper.Element
}

var (
	// defaultMapper 기본 속성 목록을 사용하는 매퍼 (프로세스 전체에서 공유)
	defaultMapper = sync.OnceValue(func() *mapper.Mapper {
		return mapper.MustNew()
	})

	// defaultSchema 실행 파일에 내장된 봉투 스키마 (프로세스 전체에서 한 번만 로드)
	defaultSchema = schema.NewFSLoader(xsd.FS, xsd.Envelope)
)

// Writer 하나의 판매자에 대한 Product 피드 문서를 조립합니다.
//
// 메시지는 추가된 순서대로 1부터 시작하는 MessageID를 부여받으며, 부여된 ID는 재사용되지 않습니다.
// Writer는 동시 수정에 안전하지 않으므로 하나의 고루틴에서만 사용해야 합니다.
type Writer struct {
	merchantID      string
	purgeAndReplace bool

	mapper ProductMapper
	schema *schema.Loader

	messages []message
	records  map[int]any
	nextID   int
}

// Option Writer 생성 옵션입니다.
type Option func(*Writer)

// WithPurgeAndReplace 기존 상품 데이터를 모두 지우고 이 피드로 대체할지 여부를 지정합니다. (기본값: false)
func WithPurgeAndReplace(purge bool) Option {
	return func(w *Writer) {
		w.purgeAndReplace = purge
	}
}

// WithMapper 레코드를 Product 요소로 변환할 매퍼를 지정합니다.
func WithMapper(m ProductMapper) Option {
	return func(w *Writer) {
		if m != nil {
			w.mapper = m
		}
	}
}

// WithSchema 검증에 사용할 스키마 로더를 지정합니다.
func WithSchema(l *schema.Loader) Option {
	return func(w *Writer) {
		if l != nil {
			w.schema = l
		}
	}
}

// WithSchemaFile 파일 시스템의 스키마 파일로 검증하도록 지정합니다.
func WithSchemaFile(filename string) Option {
	return func(w *Writer) {
		if filename != "" {
			w.schema = schema.NewLoader(filename)
		}
	}
}

// NewWriter 판매자 식별자에 대한 새로운 Writer를 생성합니다.
func NewWriter(merchantID string, opts ...Option) *Writer {
	w := &Writer{
		merchantID: merchantID,
		mapper:     defaultMapper(),
		schema:     defaultSchema,
		records:    make(map[int]any),
		nextID:     1,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// MerchantID 판매자 식별자를 반환합니다.
func (w *Writer) MerchantID() string {
	return w.merchantID
}

// PurgeAndReplace 문서의 PurgeAndReplace 플래그를 반환합니다.
func (w *Writer) PurgeAndReplace() bool {
	return w.purgeAndReplace
}

// Add 레코드를 Product 메시지로 변환해 문서 끝에 추가하고, 부여된 MessageID를 반환합니다.
//
// 빈 작업 유형은 Update로 기록합니다. 그 밖의 값은 검사 없이 그대로 기록되며, 알 수 없는 값이면 경고 로그만 남깁니다.
func (w *Writer) Add(record any, op OperationType) int {
	if op == "" {
		op = OperationUpdate
	}
	if !op.Valid() {
		applog.WithComponentAndFields(component, applog.Fields{
			"merchant_id":    w.merchantID,
			"operation_type": op,
		}).Warn("알 수 없는 작업 유형입니다. 값을 그대로 기록합니다")
	}

	id := w.nextID
	w.nextID++

	w.messages = append(w.messages, message{
		MessageID:     id,
		OperationType: op,
		Product:       w.mapper.BuildProduct(record),
	})
	w.records[id] = record

	return id
}

// Record MessageID에 대응하는 원본 레코드를 반환합니다.
func (w *Writer) Record(id int) (any, bool) {
	r, ok := w.records[id]
	return r, ok
}

// Len 추가된 메시지의 수를 반환합니다.
func (w *Writer) Len() int {
	return len(w.messages)
}

func (w *Writer) envelope() envelope {
	return envelope{
		XSINamespace:   XMLSchemaInstanceNamespace,
		SchemaLocation: SchemaLocation,
		Header: header{
			DocumentVersion:    DocumentVersion,
			MerchantIdentifier: w.merchantID,
		},
		MessageType:     MessageTypeProduct,
		PurgeAndReplace: w.purgeAndReplace,
		Messages:        w.messages,
	}
}

// Bytes 문서를 XML 선언을 포함한 UTF-8 바이트로 렌더링합니다. pretty가 true이면 들여쓰기를 적용합니다.
func (w *Writer) Bytes(pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	if pretty {
		enc.Indent("", "  ")
	}
	if err := enc.Encode(w.envelope()); err != nil {
		return nil, NewErrRenderFailed(err)
	}
	if err := enc.Close(); err != nil {
		return nil, NewErrRenderFailed(err)
	}
	if pretty {
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

// String Bytes의 결과를 문자열로 반환합니다.
func (w *Writer) String(pretty bool) (string, error) {
	b, err := w.Bytes(pretty)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Validate 현재 문서를 스키마로 검증하고 위반 목록을 반환합니다.
//
// 스키마는 처음 호출될 때 로드되어 보관됩니다. 위반은 경고 로그로 남기고 그대로 반환하며,
// 에러는 스키마를 로드하지 못한 경우에만 반환합니다.
func (w *Writer) Validate() ([]schema.Violation, error) {
	s, err := w.schema.Load()
	if err != nil {
		return nil, NewErrSchemaUnavailable(w.schema.Name(), err)
	}

	doc, err := w.Bytes(false)
	if err != nil {
		return nil, err
	}

	violations, err := s.Validate(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}

	for _, v := range violations {
		applog.WithComponentAndFields(component, applog.Fields{
			"merchant_id": w.merchantID,
			"path":        v.Path,
			"reason":      v.Message,
		}).Warn("피드 문서가 스키마를 위반합니다")
	}
	if len(violations) == 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"merchant_id": w.merchantID,
			"messages":    len(w.messages),
		}).Debug("피드 문서 스키마 검증 통과")
	}

	return violations, nil
}
