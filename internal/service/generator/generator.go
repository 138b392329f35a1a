// Package generator 상품 카탈로그로부터 MWS Product 피드 문서를 생성하고 검증한 뒤 저장합니다.
//
// 문서 수준 설정은 요청 옵션, 카탈로그 헤더, 애플리케이션 설정 순서로 우선하며,
// 상품별 작업 유형은 상품에 지정된 값이 문서 수준 값보다 우선합니다.
package generator

import (
	"context"

	"github.com/darkkaiser/mws-feed/internal/catalog"
	"github.com/darkkaiser/mws-feed/internal/config"
	"github.com/darkkaiser/mws-feed/internal/mws/feed"
	"github.com/darkkaiser/mws-feed/internal/mws/mapper"
	"github.com/darkkaiser/mws-feed/internal/mws/schema"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
)

// component 피드 생성 서비스 로그의 컴포넌트 이름
const component = "generator"

// Store 생성된 피드 문서를 보관하고 저장 위치를 반환합니다.
type Store interface {
	Save(merchantID string, data []byte) (string, error)
}

// Options 요청 단위로 설정을 덮어쓰는 옵션입니다. nil인 항목은 카탈로그 헤더와 설정을 따릅니다.
type Options struct {
	PurgeAndReplace *bool
	PrettyPrint     *bool
	Validate        *bool

	// Save 생성된 문서를 저장소에 기록할지 여부
	Save bool
}

// Result 피드 생성 결과입니다.
type Result struct {
	MerchantID      string
	PurgeAndReplace bool
	Messages        int
	Document        []byte

	// Path 문서가 저장된 경로 (저장하지 않았으면 빈 문자열)
	Path string

	// Validated 스키마 검증을 수행했는지 여부
	Validated  bool
	Violations []schema.Violation
}

// Valid 검증을 통과했거나 검증을 수행하지 않았으면 true를 반환합니다.
func (r *Result) Valid() bool {
	return len(r.Violations) == 0
}

// Generator 카탈로그를 피드 문서로 변환합니다. 생성 이후에는 상태가 바뀌지 않으므로 동시에 사용해도 안전합니다.
type Generator struct {
	merchantID      string
	purgeAndReplace bool
	prettyPrint     bool
	validate        bool
	operationType   feed.OperationType

	catalogFile     string
	catalogEncoding string

	mapper *mapper.Mapper
	schema *schema.Loader
	store  Store
}

// New 설정으로부터 Generator를 생성합니다. store가 nil이면 저장을 요청할 때 에러를 반환합니다.
func New(appConfig *config.AppConfig, store Store) (*Generator, error) {
	op := feed.OperationType(appConfig.Feed.OperationType)
	if op == "" {
		op = feed.OperationUpdate
	}
	if !op.Valid() {
		return nil, NewErrInvalidOperationType("설정", string(op))
	}

	opts := make([]mapper.Option, 0, len(appConfig.Feed.PlainTextFields)+1)
	if len(appConfig.Defaults) > 0 {
		opts = append(opts, mapper.WithDefaults(appConfig.Defaults))
	}
	for _, name := range appConfig.Feed.PlainTextFields {
		opts = append(opts, mapper.WithSerializer(name, mapper.PlainText))
	}
	m, err := mapper.New(opts...)
	if err != nil {
		return nil, NewErrMapperCreationFailed(err)
	}

	g := &Generator{
		merchantID:      appConfig.MerchantID,
		purgeAndReplace: appConfig.Feed.PurgeAndReplace,
		prettyPrint:     appConfig.Feed.PrettyPrint,
		validate:        appConfig.Feed.Validate,
		operationType:   op,

		catalogFile:     appConfig.Catalog.File,
		catalogEncoding: appConfig.Catalog.Encoding,

		mapper: m,
		store:  store,
	}
	if appConfig.Feed.SchemaFile != "" {
		g.schema = schema.NewLoader(appConfig.Feed.SchemaFile)
	}

	return g, nil
}

// Generate 카탈로그의 모든 상품을 담은 피드 문서를 생성합니다.
//
// 스키마 위반은 에러가 아니며 Result.Violations로 전달됩니다. 위반이 있어도 저장을 요청했다면 문서는 저장됩니다.
func (g *Generator) Generate(ctx context.Context, c *catalog.Catalog, opts Options) (*Result, error) {
	if c == nil {
		return nil, ErrNilCatalog
	}

	merchantID := firstNonEmpty(c.MerchantID, g.merchantID)
	if merchantID == "" {
		return nil, ErrMissingMerchantID
	}

	defaultOp := g.operationType
	if c.OperationType != "" {
		defaultOp = feed.OperationType(c.OperationType)
		if !defaultOp.Valid() {
			return nil, NewErrInvalidOperationType("카탈로그", c.OperationType)
		}
	}

	purge := pick(opts.PurgeAndReplace, c.PurgeAndReplace, g.purgeAndReplace)
	pretty := pick(opts.PrettyPrint, nil, g.prettyPrint)
	validate := g.Validates(opts)

	w := feed.NewWriter(merchantID, feed.WithPurgeAndReplace(purge), feed.WithMapper(g.mapper), feed.WithSchema(g.schema))
	for _, p := range c.Products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		op := defaultOp
		if p.Operation() != "" {
			op = feed.OperationType(p.Operation())
		}
		w.Add(p, op)
	}

	document, err := w.Bytes(pretty)
	if err != nil {
		return nil, err
	}

	result := &Result{
		MerchantID:      merchantID,
		PurgeAndReplace: purge,
		Messages:        w.Len(),
		Document:        document,
	}

	if validate {
		violations, err := w.Validate()
		if err != nil {
			return nil, err
		}
		result.Validated = true
		result.Violations = violations
	}

	if opts.Save {
		if g.store == nil {
			return nil, ErrStoreNotConfigured
		}
		path, err := g.store.Save(merchantID, document)
		if err != nil {
			return nil, NewErrSaveFailed(err)
		}
		result.Path = path
	}

	entry := applog.WithComponentAndFields(component, applog.Fields{
		"merchant_id":       merchantID,
		"purge_and_replace": purge,
		"messages":          result.Messages,
		"bytes":             len(document),
		"validated":         result.Validated,
		"violations":        len(result.Violations),
		"path":              result.Path,
	})
	if result.Valid() {
		entry.Info("피드 문서 생성 완료")
	} else {
		entry.Warn("피드 문서 생성 완료 (스키마 위반 발견)")
	}

	return result, nil
}

// GenerateFromFile 설정된 카탈로그 파일을 읽어 피드 문서를 생성하고 저장소에 저장합니다.
func (g *Generator) GenerateFromFile(ctx context.Context) (*Result, error) {
	c, err := catalog.Load(g.catalogFile, g.catalogEncoding)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, c, Options{Save: true})
}

// Validates 주어진 옵션으로 Generate를 호출했을 때 스키마 검증을 수행하는지 여부를 반환합니다.
func (g *Generator) Validates(opts Options) bool {
	return pick(opts.Validate, nil, g.validate)
}

// CheckSchema 검증용 스키마를 사용할 수 있는지 확인합니다. 스키마는 한 번 로드되면 보관됩니다.
func (g *Generator) CheckSchema() error {
	_, err := feed.NewWriter(g.merchantID, feed.WithSchema(g.schema)).Validate()
	return err
}

// CatalogFile 설정된 카탈로그 파일 경로를 반환합니다.
func (g *Generator) CatalogFile() string {
	return g.catalogFile
}

func pick(override, header *bool, fallback bool) bool {
	if override != nil {
		return *override
	}
	if header != nil {
		return *header
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
