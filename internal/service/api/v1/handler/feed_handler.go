// Package handler v1 피드 API 핸들러를 제공합니다.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/darkkaiser/mws-feed/internal/catalog"
	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
	"github.com/darkkaiser/mws-feed/internal/service/api/constants"
	apihandler "github.com/darkkaiser/mws-feed/internal/service/api/handler"
	"github.com/darkkaiser/mws-feed/internal/service/api/httputil"
	"github.com/darkkaiser/mws-feed/internal/service/api/model/response"
	"github.com/darkkaiser/mws-feed/internal/service/api/v1/model/request"
	"github.com/darkkaiser/mws-feed/internal/service/generator"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/labstack/echo/v4"
)

// Generator 카탈로그로 피드 문서를 생성합니다.
type Generator interface {
	Generate(ctx context.Context, c *catalog.Catalog, opts generator.Options) (*generator.Result, error)
	Validates(opts generator.Options) bool
	CheckSchema() error
}

// Handler 피드 생성/검증 요청을 처리합니다.
type Handler struct {
	generator Generator
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(g Generator) *Handler {
	if g == nil {
		panic(constants.PanicMsgGeneratorRequired)
	}

	return &Handler{generator: g}
}

// GenerateFeedHandler 요청 본문의 카탈로그로 피드 문서를 생성합니다.
//
// 기본 응답은 XML 문서이며, 메시지 수와 위반 수는 X-Feed-* 헤더로 전달합니다.
// format=json이면 문서를 포함한 FeedResponse를 반환합니다.
func (h *Handler) GenerateFeedHandler(c echo.Context) error {
	q, err := bindQuery(c)
	if err != nil {
		return err
	}

	save := request.Bool(q.Save)
	opts := generator.Options{
		PurgeAndReplace: request.Bool(q.PurgeAndReplace),
		PrettyPrint:     request.Bool(q.Pretty),
		Validate:        request.Bool(q.Validate),
		Save:            save != nil && *save,
	}

	result, err := h.generate(c, opts)
	if err != nil {
		return err
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"merchant_id": result.MerchantID,
		"messages":    result.Messages,
		"violations":  len(result.Violations),
		"path":        result.Path,
		"remote_ip":   c.RealIP(),
	}).Info(constants.LogMsgFeedGenerated)

	if q.Format == constants.FormatJSON {
		resp := newFeedResponse(result)
		resp.Document = string(result.Document)
		return c.JSON(http.StatusOK, resp)
	}

	header := c.Response().Header()
	header.Set(constants.XFeedMessages, strconv.Itoa(result.Messages))
	if result.Validated {
		header.Set(constants.XFeedViolations, strconv.Itoa(len(result.Violations)))
	}
	if result.Path != "" {
		header.Set(constants.XFeedPath, result.Path)
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, result.Document)
}

// ValidateFeedHandler 요청 본문의 카탈로그로 피드 문서를 생성해 스키마로 검증하고, 결과만 반환합니다.
// 문서는 저장하지 않습니다.
func (h *Handler) ValidateFeedHandler(c echo.Context) error {
	q, err := bindQuery(c)
	if err != nil {
		return err
	}

	validate := true
	result, err := h.generate(c, generator.Options{
		PurgeAndReplace: request.Bool(q.PurgeAndReplace),
		Validate:        &validate,
	})
	if err != nil {
		return err
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"merchant_id": result.MerchantID,
		"messages":    result.Messages,
		"violations":  len(result.Violations),
		"remote_ip":   c.RealIP(),
	}).Info(constants.LogMsgFeedValidated)

	return c.JSON(http.StatusOK, newFeedResponse(result))
}

func (h *Handler) generate(c echo.Context, opts generator.Options) (*generator.Result, error) {
	cat, err := readCatalog(c)
	if err != nil {
		return nil, err
	}

	if h.generator.Validates(opts) {
		if err := h.generator.CheckSchema(); err != nil {
			logFailure(c, err)
			return nil, httputil.NewServiceUnavailableError(constants.ErrMsgServiceUnavailable)
		}
	}

	result, err := h.generator.Generate(c.Request().Context(), cat, opts)
	if err != nil {
		logFailure(c, err)

		switch {
		case apperrors.Is(err, apperrors.InvalidInput):
			return nil, httputil.NewUnprocessableEntityError(fmt.Sprintf(constants.ErrMsgUnprocessableCatalog, reason(err)))
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return nil, httputil.NewServiceUnavailableError(constants.ErrMsgRequestTimeout)
		}
		return nil, httputil.NewInternalServerError(constants.ErrMsgInternalServer)
	}

	return result, nil
}

func bindQuery(c echo.Context) (*request.FeedQuery, error) {
	var q request.FeedQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return nil, httputil.NewBadRequestError(constants.ErrMsgBadRequest)
	}
	if err := apihandler.ValidateRequest(&q); err != nil {
		return nil, httputil.NewBadRequestError(apihandler.FormatValidationError(err))
	}
	return &q, nil
}

// readCatalog 요청 본문을 카탈로그로 해석합니다. Content-Type의 charset을 문자 인코딩으로 사용합니다.
func readCatalog(c echo.Context) (*catalog.Catalog, error) {
	req := c.Request()
	if req.Body == nil {
		return nil, httputil.NewBadRequestError(constants.ErrMsgBadRequestEmptyBody)
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		// BodyLimit 미들웨어의 413 에러는 그대로 전달한다.
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		return nil, httputil.NewBadRequestError(constants.ErrMsgBadRequestBodyReadFailed)
	}
	if len(body) == 0 {
		return nil, httputil.NewBadRequestError(constants.ErrMsgBadRequestEmptyBody)
	}

	var encoding string
	if _, params, err := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType)); err == nil {
		encoding = params["charset"]
	}

	cat, err := catalog.Decode(body, encoding)
	if err != nil {
		logFailure(c, err)
		return nil, httputil.NewUnprocessableEntityError(fmt.Sprintf(constants.ErrMsgUnprocessableCatalog, reason(err)))
	}

	return cat, nil
}

func newFeedResponse(result *generator.Result) response.FeedResponse {
	return response.FeedResponse{
		ResultCode:      0,
		MerchantID:      result.MerchantID,
		PurgeAndReplace: result.PurgeAndReplace,
		Messages:        result.Messages,
		Path:            result.Path,
		Validated:       result.Validated,
		Valid:           result.Valid(),
		Violations:      nonNil(result.Violations),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// reason 응답 메시지에 사용할 에러 설명을 반환합니다. AppError는 타입 표기 없이 메시지만 사용합니다.
func reason(err error) string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr.Message()
	}
	return err.Error()
}

func logFailure(c echo.Context, err error) {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"method":     c.Request().Method,
		"path":       c.Request().URL.Path,
		"remote_ip":  c.RealIP(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		"error":      err,
	}).Warn(constants.LogMsgFeedRequestFailed)
}
