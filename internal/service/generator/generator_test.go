package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/darkkaiser/mws-feed/internal/catalog"
	"github.com/darkkaiser/mws-feed/internal/config"
	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
	"github.com/darkkaiser/mws-feed/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore 저장 요청을 메모리에 기록하는 Store 구현체
type fakeStore struct {
	mu    sync.Mutex
	saved map[string][]byte
	err   error
}

func (s *fakeStore) Save(merchantID string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	path := "mem://" + merchantID
	s.saved[path] = data
	return path, nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		MerchantID: "M-CONFIG",
		Feed: config.FeedConfig{
			PrettyPrint:     false,
			Validate:        true,
			OperationType:   "Update",
			PlainTextFields: []string{"Description"},
		},
		Defaults: map[string]any{"brand": "Acme"},
	}
}

func mustParse(t *testing.T, doc string) *catalog.Catalog {
	t.Helper()

	c, err := catalog.Parse([]byte(doc))
	require.NoError(t, err)
	return c
}

func boolPtr(b bool) *bool { return &b }

// =============================================================================
// New
// =============================================================================

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(c *config.AppConfig)
		errType apperrors.ErrorType
		message string
	}{
		{
			name:    "알 수 없는 작업 유형",
			modify:  func(c *config.AppConfig) { c.Feed.OperationType = "Replace" },
			errType: apperrors.InvalidInput,
			message: "'Replace'",
		},
		{
			name:    "필드 목록에 없는 순수 텍스트 필드",
			modify:  func(c *config.AppConfig) { c.Feed.PlainTextFields = []string{"Summary"} },
			errType: apperrors.NotFound,
			message: "'Summary'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			tt.modify(cfg)

			g, err := New(cfg, nil)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, apperrors.Is(err, tt.errType))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestNew_EmptyOperationTypeDefaultsToUpdate(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Feed.OperationType = ""

	g, err := New(cfg, nil)
	require.NoError(t, err)

	result, err := g.Generate(context.Background(), mustParse(t, `[{"sku":"A-1"}]`), Options{})
	require.NoError(t, err)
	assert.Contains(t, string(result.Document), "<OperationType>Update</OperationType>")
}

// =============================================================================
// Generate
// =============================================================================

func TestGenerate_Document(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig(), nil)
	require.NoError(t, err)

	c := mustParse(t, `[
		{"sku": "A-1", "title": "Widget", "description": "<p>Hello <b>world</b></p>"},
		{"sku": "A-2", "title": "Gadget", "brand": "Other", "operation_type": "Delete"}
	]`)

	result, err := g.Generate(context.Background(), c, Options{})
	require.NoError(t, err)

	doc := string(result.Document)
	assert.Equal(t, "M-CONFIG", result.MerchantID)
	assert.Equal(t, 2, result.Messages)
	assert.False(t, result.PurgeAndReplace)
	assert.Empty(t, result.Path)
	assert.True(t, result.Validated)
	assert.True(t, result.Valid(), "%v", result.Violations)

	assert.Contains(t, doc, "<MerchantIdentifier>M-CONFIG</MerchantIdentifier>")
	assert.Contains(t, doc, "<Description>Hello world</Description>")
	assert.Contains(t, doc, "<Brand>Acme</Brand>")
	assert.Contains(t, doc, "<Brand>Other</Brand>")
	assert.Contains(t, doc, "<PurgeAndReplace>false</PurgeAndReplace>")

	// 상품별 작업 유형이 문서 수준 작업 유형보다 우선한다.
	first := strings.Index(doc, "<OperationType>Update</OperationType>")
	second := strings.Index(doc, "<OperationType>Delete</OperationType>")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestGenerate_Precedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		catalog       string
		opts          Options
		expectedID    string
		expectedPurge bool
		expectedOp    string
	}{
		{
			name:          "설정값 사용",
			catalog:       `[{"sku":"A-1"}]`,
			expectedID:    "M-CONFIG",
			expectedPurge: false,
			expectedOp:    "Update",
		},
		{
			name:          "카탈로그 헤더가 설정보다 우선",
			catalog:       `{"merchant_id":"M-HEADER","purge_and_replace":true,"operation_type":"PartialUpdate","products":[{"sku":"A-1"}]}`,
			expectedID:    "M-HEADER",
			expectedPurge: true,
			expectedOp:    "PartialUpdate",
		},
		{
			name:          "요청 옵션이 카탈로그 헤더보다 우선",
			catalog:       `{"purge_and_replace":true,"products":[{"sku":"A-1"}]}`,
			opts:          Options{PurgeAndReplace: boolPtr(false)},
			expectedID:    "M-CONFIG",
			expectedPurge: false,
			expectedOp:    "Update",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g, err := New(testConfig(), nil)
			require.NoError(t, err)

			result, err := g.Generate(context.Background(), mustParse(t, tt.catalog), tt.opts)
			require.NoError(t, err)

			doc := string(result.Document)
			assert.Equal(t, tt.expectedID, result.MerchantID)
			assert.Equal(t, tt.expectedPurge, result.PurgeAndReplace)
			assert.Contains(t, doc, "<MerchantIdentifier>"+tt.expectedID+"</MerchantIdentifier>")
			assert.Contains(t, doc, "<OperationType>"+tt.expectedOp+"</OperationType>")
		})
	}
}

func TestGenerate_PrettyPrintAndValidateOverrides(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig(), nil)
	require.NoError(t, err)
	c := mustParse(t, `[{"title":"No SKU"}]`)

	compact, err := g.Generate(context.Background(), c, Options{Validate: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, compact.Validated)
	assert.True(t, compact.Valid())
	assert.NotContains(t, string(compact.Document), "\n  ")

	pretty, err := g.Generate(context.Background(), c, Options{PrettyPrint: boolPtr(true)})
	require.NoError(t, err)
	assert.Contains(t, string(pretty.Document), "\n  <Header>")
	assert.True(t, pretty.Validated)
	assert.False(t, pretty.Valid())
}

func TestGenerate_Violations(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig(), nil)
	require.NoError(t, err)

	result, err := g.Generate(context.Background(), mustParse(t, `[{"title":"No SKU"}]`), Options{})
	require.NoError(t, err)
	require.NotEmpty(t, result.Violations)
	assert.Equal(t, "/AmazonEnvelope/Message/Product", result.Violations[0].Path)
	assert.Contains(t, result.Violations[0].Message, "SKU")
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		modify  func(c *config.AppConfig)
		ctx     context.Context
		catalog *catalog.Catalog
		opts    Options
		check   func(t *testing.T, err error)
	}{
		{
			name:    "카탈로그 없음",
			catalog: nil,
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNilCatalog) },
		},
		{
			name:    "판매자 ID 없음",
			modify:  func(c *config.AppConfig) { c.MerchantID = "" },
			catalog: &catalog.Catalog{},
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrMissingMerchantID) },
		},
		{
			name:    "카탈로그 헤더의 작업 유형 오류",
			catalog: &catalog.Catalog{Header: catalog.Header{OperationType: "Replace"}},
			check: func(t *testing.T, err error) {
				assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
				assert.Contains(t, err.Error(), "카탈로그의 작업 유형")
			},
		},
		{
			name:    "저장소 미구성",
			catalog: &catalog.Catalog{},
			opts:    Options{Save: true},
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrStoreNotConfigured) },
		},
		{
			name:    "취소된 컨텍스트",
			ctx:     cancelled,
			catalog: &catalog.Catalog{Products: []*catalog.Product{{}}},
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, context.Canceled) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			if tt.modify != nil {
				tt.modify(cfg)
			}
			ctx := tt.ctx
			if ctx == nil {
				ctx = context.Background()
			}

			g, err := New(cfg, nil)
			require.NoError(t, err)

			result, err := g.Generate(ctx, tt.catalog, tt.opts)
			require.Error(t, err)
			assert.Nil(t, result)
			tt.check(t, err)
		})
	}
}

func TestGenerate_Save(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	g, err := New(testConfig(), store)
	require.NoError(t, err)

	result, err := g.Generate(context.Background(), mustParse(t, `[{"sku":"A-1"}]`), Options{Save: true})
	require.NoError(t, err)
	assert.Equal(t, "mem://M-CONFIG", result.Path)
	assert.Equal(t, result.Document, store.saved[result.Path])
}

func TestGenerate_SaveFailed(t *testing.T) {
	t.Parallel()

	store := &fakeStore{err: apperrors.New(apperrors.System, "디스크 가득 참")}
	g, err := New(testConfig(), store)
	require.NoError(t, err)

	result, err := g.Generate(context.Background(), mustParse(t, `[{"sku":"A-1"}]`), Options{Save: true})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.Is(err, apperrors.System))
	assert.Contains(t, err.Error(), "저장하는데 실패했습니다")
}

func TestGenerate_CustomSchemaFile(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), "permissive.xsd")
	require.NoError(t, os.WriteFile(filename, []byte(`<?xml version="1.0"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
	<xsd:element name="AmazonEnvelope">
		<xsd:complexType>
			<xsd:sequence>
				<xsd:any minOccurs="0" maxOccurs="unbounded"/>
			</xsd:sequence>
		</xsd:complexType>
	</xsd:element>
</xsd:schema>`), 0644))

	cfg := testConfig()
	cfg.Feed.SchemaFile = filename

	g, err := New(cfg, nil)
	require.NoError(t, err)

	result, err := g.Generate(context.Background(), mustParse(t, `[{"title":"No SKU"}]`), Options{})
	require.NoError(t, err)
	assert.True(t, result.Validated)
	assert.Empty(t, result.Violations)
}

// =============================================================================
// GenerateFromFile
// =============================================================================

func TestGenerateFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	catalogFile := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalogFile, []byte(`{"merchant_id":"acme","products":[{"sku":"A-1","title":"Widget"}]}`), 0644))

	store, err := storage.NewFileStore(filepath.Join(dir, "feeds"))
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Catalog = config.CatalogConfig{File: catalogFile, Encoding: "utf-8"}

	g, err := New(cfg, store)
	require.NoError(t, err)
	assert.Equal(t, catalogFile, g.CatalogFile())

	result, err := g.GenerateFromFile(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, result.Path)
	assert.Equal(t, store.Dir(), filepath.Dir(result.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(result.Path), "product-feed-acme-"))

	saved, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, result.Document, saved)
}

func TestGenerateFromFile_CatalogMissing(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Catalog = config.CatalogConfig{File: filepath.Join(t.TempDir(), "missing.json")}

	g, err := New(cfg, &fakeStore{})
	require.NoError(t, err)

	result, err := g.GenerateFromFile(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
	assert.False(t, errors.Is(err, ErrStoreNotConfigured))
}

// =============================================================================
// CheckSchema / Validates
// =============================================================================

func TestCheckSchema(t *testing.T) {
	t.Parallel()

	t.Run("Embedded Schema", func(t *testing.T) {
		g, err := New(testConfig(), nil)
		require.NoError(t, err)
		assert.NoError(t, g.CheckSchema())
	})

	t.Run("Missing Schema File", func(t *testing.T) {
		cfg := testConfig()
		cfg.Feed.SchemaFile = filepath.Join(t.TempDir(), "missing.xsd")

		g, err := New(cfg, nil)
		require.NoError(t, err)

		err = g.CheckSchema()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})
}

func TestValidates(t *testing.T) {
	t.Parallel()

	g, err := New(testConfig(), nil)
	require.NoError(t, err)

	assert.True(t, g.Validates(Options{}))
	assert.False(t, g.Validates(Options{Validate: boolPtr(false)}))
}
