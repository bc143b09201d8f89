package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Astemirdum/article-rating/rating/internal/errs"
	"github.com/Astemirdum/article-rating/rating/internal/model"

	md "github.com/Astemirdum/article-rating/pkg/middleware"
	"github.com/Astemirdum/article-rating/pkg/validate"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Handler struct {
	ratingSvc RatingService
	metrics   *md.Metrics
	rps       rate.Limit
	log       *zap.Logger
}

type Option func(h *Handler)

func WithMetrics(m *md.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithRateLimit caps requests per second per client, zero disables it.
func WithRateLimit(rps float64) Option {
	return func(h *Handler) {
		h.rps = rate.Limit(rps)
	}
}

func New(ratingSvc RatingService, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		ratingSvc: ratingSvc,
		log:       log.Named("handler"),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.metrics == nil {
		h.metrics = md.NewMetrics()
	}
	return h
}

var ratingPaths = []string{"/", "/api/v1/ratings"}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = h.errorHandler
	e.Validator = validate.NewCustomValidator()

	e.Pre(md.CORS)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(h.metrics.Middleware)

	e.GET("/manage/health", h.Health)
	e.GET("/metrics", h.metrics.Handler())

	api := []echo.MiddlewareFunc{
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		md.RequestID(),
		md.NewRateLimiter(h.rps),
	}
	for _, path := range ratingPaths {
		e.GET(path, h.GetRating, api...)
		e.POST(path, h.SetRating, api...)
	}

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetRating(c echo.Context) error {
	ctx := c.Request().Context()

	articleIDParam := c.QueryParam("article_id")
	if articleIDParam == "" {
		return errs.NewValidationError(errs.MsgArticleIDRequired)
	}
	articleID, err := strconv.Atoi(strings.TrimSpace(articleIDParam))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	rating, err := h.ratingSvc.GetRating(ctx, articleID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.Cause(err).Error())
	}

	return c.JSON(http.StatusOK, model.GetRatingResponse{Rating: rating})
}

func (h *Handler) SetRating(c echo.Context) error {
	ctx := c.Request().Context()

	var req model.SetRatingRequest
	if err := decodeJSON(c.Request().Body, &req); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return validationMessage(err)
	}

	rating, err := h.ratingSvc.SetRating(ctx, req.ArticleID, req.Rating)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.Cause(err).Error())
	}
	h.metrics.RatingWritten()

	return c.JSON(http.StatusOK, model.SetRatingResponse{Rating: rating, Success: true})
}

var errBodyNotObject = errors.New("request body must be a JSON object")

// decodeJSON reads the whole body as one JSON document, trailing data is an error.
// An empty body decodes as {}, a literal null is rejected.
func decodeJSON(body io.Reader, v interface{}) error {
	if body == nil {
		return nil
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return nil
	case bytes.Equal(data, []byte("null")):
		return errBodyNotObject
	}
	return json.Unmarshal(data, v)
}

// validationMessage collapses field errors into the wire message.
// A missing field takes precedence over an out-of-range rating.
func validationMessage(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValidationError(err.Error())
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return errs.NewValidationError(errs.MsgFieldsRequired)
		}
	}
	return errs.NewValidationError(errs.MsgRatingRange)
}

func (h *Handler) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := errors.Cause(err).Error()

	var (
		verr *errs.ValidationError
		he   *echo.HTTPError
	)
	switch {
	case errors.As(err, &verr):
		code = http.StatusBadRequest
		msg = verr.Message
	case errors.As(err, &he):
		code = he.Code
		msg = fmt.Sprint(he.Message)
		if he.Internal != nil {
			h.log.Debug("http error", zap.Int("code", code), zap.Error(he.Internal))
		}
	}
	if code == http.StatusMethodNotAllowed {
		msg = errs.MsgMethodNotAllowed
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, model.ErrorResponse{Error: msg})
	}
	if werr != nil {
		h.log.Error("write error response", zap.Error(werr))
	}
}
