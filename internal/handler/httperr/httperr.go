package httperr

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"roomledger/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	CodeInvalidRequest errs.Code = "INVALID_REQUEST"
	CodeUnauthorized   errs.Code = "UNAUTHORIZED"
	CodeCanceled       errs.Code = "REQUEST_CANCELED"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string    `json:"message"`
		Code    errs.Code `json:"code"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

var kindStatus = map[errs.Kind]int{
	errs.KindValidation:        http.StatusBadRequest,
	errs.KindNotFound:          http.StatusNotFound,
	errs.KindConflict:          http.StatusConflict,
	errs.KindInvalidTransition: http.StatusUnprocessableEntity,
	errs.KindDuplicateRequest:  http.StatusConflict,
	errs.KindForbidden:         http.StatusForbidden,
	errs.KindStorageContention: http.StatusServiceUnavailable,
	errs.KindStorageFault:      http.StatusInternalServerError,
	errs.KindInternal:          http.StatusInternalServerError,
}

func StatusOf(kind errs.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code errs.Code, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort renders a usecase error by its coded classification. Uncoded errors
// become a generic 500 without leaking their text.
func Abort(c *gin.Context, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		AbortWithError(c, http.StatusServiceUnavailable, err, CodeCanceled, "Request canceled", nil)
		return
	}
	coded, ok := errs.Classify(err)
	if !ok || coded.Kind() == errs.KindInternal || coded.Kind() == errs.KindStorageFault {
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.Any("stack", errs.ExtractStackLines(err, 12)))
	}
	if !ok || coded.Kind() == errs.KindInternal {
		AbortWithError(c, http.StatusInternalServerError, err, errs.CodeInternal, "Internal server error", nil)
		return
	}
	AbortWithError(c, StatusOf(coded.Kind()), err, coded.Code(), coded.Error(), nil)
}

// AbortBind renders a request binding failure. A malformed date gets its
// domain code so clients see the same code as from the usecase.
func AbortBind(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		AbortWithError(c, http.StatusBadRequest, err, CodeInvalidRequest, "Invalid request", nil)
		return
	}

	code := CodeInvalidRequest
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		switch fe.Tag() {
		case "date":
			code = "INVALID_DATE_FORMAT"
		case "required":
			if code == CodeInvalidRequest {
				code = errs.ErrMissingData.Code()
			}
		}
	}
	AbortWithError(c, http.StatusBadRequest, err, code, "Invalid request", fields)
}
