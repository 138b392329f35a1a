package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/darkkaiser/mws-feed/internal/service/api/constants"
	"github.com/darkkaiser/mws-feed/internal/service/api/model/response"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// statusOf 에러가 echo.HTTPError이면 상태 코드를 반환합니다.
func statusOf(t *testing.T, err error) int {
	t.Helper()

	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "echo.HTTPError가 아닙니다: %v", err)
	return he.Code
}

// =============================================================================
// RequireAppKey
// =============================================================================

func TestRequireAppKey_PanicsOnEmptyKey(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, constants.PanicMsgAppKeyRequired, func() {
		RequireAppKey("")
	})
}

func TestRequireAppKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{name: "Header", header: "secret", wantStatus: http.StatusOK},
		{name: "Query", query: "secret", wantStatus: http.StatusOK},
		{name: "Header Takes Precedence", header: "secret", query: "wrong", wantStatus: http.StatusOK},
		{name: "Missing", wantStatus: http.StatusUnauthorized},
		{name: "Wrong Header", header: "wrong", wantStatus: http.StatusUnauthorized},
		{name: "Wrong Query", query: "secre", wantStatus: http.StatusUnauthorized},
	}

	h := RequireAppKey("secret")(okHandler)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target := "/api/v1/feeds"
			if tt.query != "" {
				target += "?" + constants.AppKeyQuery + "=" + tt.query
			}
			req := httptest.NewRequest(http.MethodPost, target, nil)
			if tt.header != "" {
				req.Header.Set(constants.XAppKey, tt.header)
			}
			rec := httptest.NewRecorder()

			err := h(echo.New().NewContext(req, rec))
			if tt.wantStatus == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, statusOf(t, err))
		})
	}
}

// =============================================================================
// ValidateContentType
// =============================================================================

func TestValidateContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		contentType string
		wantErr     bool
	}{
		{name: "JSON", body: "[]", contentType: "application/json", wantErr: false},
		{name: "JSON With Charset", body: "[]", contentType: "application/json; charset=EUC-KR", wantErr: false},
		{name: "Upper Case", body: "[]", contentType: "Application/JSON", wantErr: false},
		{name: "Empty Body Skipped", body: "", contentType: "", wantErr: false},
		{name: "Missing Content-Type", body: "[]", contentType: "", wantErr: true},
		{name: "XML", body: "<a/>", contentType: "application/xml", wantErr: true},
		{name: "Prefix Lookalike", body: "[]", contentType: "application/jsonp", wantErr: true},
	}

	h := ValidateContentType(echo.MIMEApplicationJSON)(okHandler)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}
			err := h(echo.New().NewContext(req, httptest.NewRecorder()))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusUnsupportedMediaType, statusOf(t, err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// =============================================================================
// RateLimiting
// =============================================================================

func TestNewIPRateLimiter_WhiteBox(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(10, 20)
	assert.NotNil(t, limiter.limiters)
	assert.Equal(t, rate.Limit(10), limiter.rate)
	assert.Equal(t, 20, limiter.burst)
	assert.Empty(t, limiter.limiters)
}

func TestRateLimiting_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		requestsPerSecond int
		burst             int
		expectedMessage   string
	}{
		{"Zero RequestsPerSecond", 0, 20, fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, 0)},
		{"Negative RequestsPerSecond", -10, 20, fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, -10)},
		{"Zero Burst", 10, 0, fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, 0)},
		{"Both Zero", 0, 0, fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, 0)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.PanicsWithValue(t, tt.expectedMessage, func() {
				RateLimiting(tt.requestsPerSecond, tt.burst)
			})
		})
	}

	assert.NotPanics(t, func() { RateLimiting(1, 1) })
}

func TestRateLimiting_BlocksAfterBurst(t *testing.T) {
	t.Parallel()

	h := RateLimiting(1, 2)(okHandler)
	call := func(ip string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		return rec, h(echo.New().NewContext(req, rec))
	}

	for i := 0; i < 2; i++ {
		_, err := call("10.0.0.1")
		require.NoError(t, err)
	}

	rec, err := call("10.0.0.1")
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, statusOf(t, err))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// 다른 IP는 독립적인 버킷을 사용한다.
	_, err = call("10.0.0.2")
	assert.NoError(t, err)
}

func TestIPRateLimiter_ConcurrentGetLimiter(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(10, 10)

	var wg sync.WaitGroup
	results := make([]*rate.Limiter, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = limiter.getLimiter("192.168.0.1")
		}(i)
	}
	wg.Wait()

	for _, l := range results[1:] {
		assert.Same(t, results[0], l)
	}
	assert.Len(t, limiter.limiters, 1)
}

// =============================================================================
// PanicRecovery
// =============================================================================

func TestPanicRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler echo.HandlerFunc
		wantMsg string
	}{
		{
			name:    "String Panic",
			handler: func(echo.Context) error { panic("boom") },
			wantMsg: "boom",
		},
		{
			name:    "Error Panic",
			handler: func(echo.Context) error { panic(errors.New("error boom")) },
			wantMsg: "error boom",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			err := PanicRecovery()(tt.handler)(echo.New().NewContext(req, httptest.NewRecorder()))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	t.Run("No Panic", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.NoError(t, PanicRecovery()(okHandler)(echo.New().NewContext(req, httptest.NewRecorder())))
	})

	t.Run("Abort Handler Repanics", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		h := PanicRecovery()(func(echo.Context) error { panic(http.ErrAbortHandler) })
		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			_ = h(echo.New().NewContext(req, httptest.NewRecorder()))
		})
	})
}

// =============================================================================
// HTTPLogger
// =============================================================================

func TestMaskSensitiveQueryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		uri  string
		want []string
		deny []string
	}{
		{
			name: "App Key",
			uri:  "/api/v1/feeds?app_key=secret123&pretty=true",
			want: []string{"pretty=true", "app_key=secr"},
			deny: []string{"secret123"},
		},
		{
			name: "Nothing Sensitive",
			uri:  "/api/v1/feeds?pretty=true",
			want: []string{"/api/v1/feeds?pretty=true"},
		},
		{
			name: "Invalid URI",
			uri:  "%zz",
			want: []string{"%zz"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := maskSensitiveQueryParams(tt.uri)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, d := range tt.deny {
				assert.NotContains(t, got, d)
			}
		})
	}
}

func TestHTTPLogger_PassesErrorToErrorHandler(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		_ = c.JSON(http.StatusTeapot, response.ErrorResponse{ResultCode: http.StatusTeapot, Message: err.Error()})
	}

	req := httptest.NewRequest(http.MethodGet, "/brew", nil)
	rec := httptest.NewRecorder()

	err := HTTPLogger()(func(echo.Context) error { return errors.New("no coffee") })(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, rec.Body.String(), "no coffee")
}

// =============================================================================
// Logger 어댑터
// =============================================================================

func TestLoggerAdapter_Levels(t *testing.T) {
	l := Logger{Logger: applog.StandardLogger()}
	original := l.Logger.GetLevel()
	defer l.Logger.SetLevel(original)

	tests := []struct {
		echoLevel log.Lvl
		appLevel  applog.Level
	}{
		{log.DEBUG, applog.DebugLevel},
		{log.INFO, applog.InfoLevel},
		{log.WARN, applog.WarnLevel},
		{log.ERROR, applog.ErrorLevel},
	}

	for _, tt := range tests {
		l.SetLevel(tt.echoLevel)
		assert.Equal(t, tt.appLevel, l.Logger.GetLevel())
		assert.Equal(t, tt.echoLevel, l.Level())
	}

	// OFF는 대응 레벨이 없으므로 현재 레벨을 유지한다.
	l.SetLevel(log.OFF)
	assert.Equal(t, applog.ErrorLevel, l.Logger.GetLevel())

	l.Logger.SetLevel(applog.TraceLevel)
	assert.Equal(t, log.DEBUG, l.Level())

	l.Logger.SetLevel(applog.FatalLevel)
	assert.Equal(t, log.OFF, l.Level())
}

func TestLoggerAdapter_Output(t *testing.T) {
	l := Logger{Logger: applog.StandardLogger()}
	original := l.Output()
	defer l.SetOutput(original)

	var buf bytes.Buffer
	l.SetOutput(&buf)
	assert.Same(t, &buf, l.Output())

	l.Infoj(log.JSON{"merchant_id": "M1"})
	assert.Contains(t, buf.String(), "merchant_id")
	assert.Contains(t, buf.String(), echoComponent)
	assert.Equal(t, "", l.Prefix())
}
