package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darkkaiser/mws-feed/internal/catalog"
	"github.com/darkkaiser/mws-feed/internal/config"
	"github.com/darkkaiser/mws-feed/internal/service/api/constants"
	"github.com/darkkaiser/mws-feed/internal/service/api/httputil"
	"github.com/darkkaiser/mws-feed/internal/service/api/model/response"
	"github.com/darkkaiser/mws-feed/internal/service/generator"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

// memStore 저장 요청을 메모리에 기록하는 generator.Store 구현체
type memStore struct {
	saved map[string][]byte
}

func (s *memStore) Save(merchantID string, data []byte) (string, error) {
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	path := "mem://" + merchantID
	s.saved[path] = data
	return path, nil
}

// stubGenerator 실제 Generator의 동작 일부를 바꿔 끼우는 테스트용 Generator
type stubGenerator struct {
	Generator
	schemaErr   error
	generateErr error
}

func (s stubGenerator) CheckSchema() error {
	if s.schemaErr != nil {
		return s.schemaErr
	}
	return s.Generator.CheckSchema()
}

func (s stubGenerator) Generate(ctx context.Context, c *catalog.Catalog, opts generator.Options) (*generator.Result, error) {
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	return s.Generator.Generate(ctx, c, opts)
}

func newGenerator(t *testing.T, merchantID string, store generator.Store) *generator.Generator {
	t.Helper()

	g, err := generator.New(&config.AppConfig{
		MerchantID: merchantID,
		Feed: config.FeedConfig{
			Validate:      true,
			OperationType: "Update",
		},
	}, store)
	require.NoError(t, err)
	return g
}

func setupEcho(h *Handler) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	e.POST("/api/v1/feeds", h.GenerateFeedHandler)
	e.POST("/api/v1/feeds/validate", h.ValidateFeedHandler)
	return e
}

func post(e *echo.Echo, target, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const validCatalog = `[{"sku":"A-1","title":"Widget"},{"sku":"A-2","title":"Gadget"}]`

func TestNewHandler_PanicsWithoutGenerator(t *testing.T) {
	assert.PanicsWithValue(t, constants.PanicMsgGeneratorRequired, func() {
		NewHandler(nil)
	})
}

func TestGenerateFeedHandler_XML(t *testing.T) {
	t.Parallel()

	e := setupEcho(NewHandler(newGenerator(t, "M1", nil)))
	rec := post(e, "/api/v1/feeds", echo.MIMEApplicationJSON, []byte(validCatalog))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, echo.MIMEApplicationXMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "2", rec.Header().Get(constants.XFeedMessages))
	assert.Equal(t, "0", rec.Header().Get(constants.XFeedViolations))
	assert.Empty(t, rec.Header().Get(constants.XFeedPath))
	assert.Contains(t, rec.Body.String(), "<MerchantIdentifier>M1</MerchantIdentifier>")
	assert.Contains(t, rec.Body.String(), "<SKU>A-2</SKU>")
}

func TestGenerateFeedHandler_JSONAndSave(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	e := setupEcho(NewHandler(newGenerator(t, "M1", store)))
	rec := post(e, "/api/v1/feeds?format=json&save=true&purge_and_replace=true&validate=false", echo.MIMEApplicationJSON, []byte(validCatalog))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp response.FeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "M1", resp.MerchantID)
	assert.True(t, resp.PurgeAndReplace)
	assert.Equal(t, 2, resp.Messages)
	assert.Equal(t, "mem://M1", resp.Path)
	assert.False(t, resp.Validated)
	assert.True(t, resp.Valid)
	assert.NotNil(t, resp.Violations)
	assert.Contains(t, resp.Document, "<PurgeAndReplace>true</PurgeAndReplace>")
	assert.Equal(t, resp.Document, string(store.saved["mem://M1"]))
}

func TestGenerateFeedHandler_CharsetFromContentType(t *testing.T) {
	t.Parallel()

	body, err := korean.EUCKR.NewEncoder().Bytes([]byte(`[{"sku":"K-1","title":"무선 키보드"}]`))
	require.NoError(t, err)

	e := setupEcho(NewHandler(newGenerator(t, "M1", nil)))
	rec := post(e, "/api/v1/feeds", "application/json; charset=EUC-KR", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "<Title>무선 키보드</Title>")
}

func TestValidateFeedHandler(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	e := setupEcho(NewHandler(newGenerator(t, "M1", store)))

	t.Run("Valid", func(t *testing.T) {
		rec := post(e, "/api/v1/feeds/validate?validate=false", echo.MIMEApplicationJSON, []byte(validCatalog))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp response.FeedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Validated, "validate 파라미터와 관계없이 항상 검증한다")
		assert.True(t, resp.Valid)
		assert.Empty(t, resp.Violations)
		assert.Empty(t, resp.Document)
		assert.Empty(t, resp.Path)
	})

	t.Run("Violations", func(t *testing.T) {
		rec := post(e, "/api/v1/feeds/validate", echo.MIMEApplicationJSON, []byte(`[{"title":"No SKU"}]`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp response.FeedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Valid)
		require.NotEmpty(t, resp.Violations)
		assert.Equal(t, "/AmazonEnvelope/Message/Product", resp.Violations[0].Path)
	})

	assert.Empty(t, store.saved)
}

func TestFeedHandlers_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		gen        func(t *testing.T) Generator
		target     string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "Empty Body",
			target:     "/api/v1/feeds",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantMsg:    constants.ErrMsgBadRequestEmptyBody,
		},
		{
			name:       "Invalid Boolean Query",
			target:     "/api/v1/feeds?pretty=maybe",
			body:       validCatalog,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "pretty",
		},
		{
			name:       "Invalid Format",
			target:     "/api/v1/feeds?format=csv",
			body:       validCatalog,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "format",
		},
		{
			name:       "Malformed Catalog",
			target:     "/api/v1/feeds",
			body:       `[{"sku":`,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "카탈로그가 올바른 JSON 문서가 아닙니다",
		},
		{
			name:       "Invalid Operation Type",
			target:     "/api/v1/feeds/validate",
			body:       `{"operation_type":"Replace","products":[{"sku":"A-1"}]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Replace",
		},
		{
			name:       "Missing Merchant ID",
			gen:        func(t *testing.T) Generator { return newGenerator(t, "", nil) },
			target:     "/api/v1/feeds",
			body:       validCatalog,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "Save Without Store",
			target:     "/api/v1/feeds?save=1",
			body:       validCatalog,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    constants.ErrMsgInternalServer,
		},
		{
			name: "Schema Unavailable",
			gen: func(t *testing.T) Generator {
				return stubGenerator{Generator: newGenerator(t, "M1", nil), schemaErr: errors.New("no schema")}
			},
			target:     "/api/v1/feeds/validate",
			body:       validCatalog,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    constants.ErrMsgServiceUnavailable,
		},
		{
			name: "Schema Not Needed",
			gen: func(t *testing.T) Generator {
				return stubGenerator{Generator: newGenerator(t, "M1", nil), schemaErr: errors.New("no schema")}
			},
			target:     "/api/v1/feeds?validate=false",
			body:       validCatalog,
			wantStatus: http.StatusOK,
		},
		{
			name: "Deadline Exceeded",
			gen: func(t *testing.T) Generator {
				return stubGenerator{Generator: newGenerator(t, "M1", nil), generateErr: context.DeadlineExceeded}
			},
			target:     "/api/v1/feeds",
			body:       validCatalog,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    constants.ErrMsgRequestTimeout,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var g Generator
			if tt.gen != nil {
				g = tt.gen(t)
			} else {
				g = newGenerator(t, "M1", nil)
			}

			rec := post(setupEcho(NewHandler(g)), tt.target, echo.MIMEApplicationJSON, []byte(tt.body))
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusOK {
				return
			}

			var resp response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.ResultCode)
			assert.Contains(t, resp.Message, tt.wantMsg)
		})
	}
}
