package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// errorResponder is the single place where failures become HTTP responses.
type errorResponder struct {
	exposeDetails bool
}

// respond writes the error envelope for err and aborts the request.
func (e errorResponder) respond(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)

	body := dto.ErrorResponse{Error: apperrors.KindName(err)}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) || status < http.StatusInternalServerError {
		body.Message = apperrors.Message(err)
	} else {
		body.Message = "internal server error"
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()), slog.String("kind", body.Error))
		if e.exposeDetails {
			body.Details = err.Error()
		}
	} else {
		logger.Warn("Request rejected", slog.String("error", err.Error()), slog.String("kind", body.Error))
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// respondBindError reports a request body that could not be decoded or failed
// its binding rules. Field-level failures are listed under "fields".
func (e errorResponder) respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request body", slog.String("error", err.Error()))

	body := dto.ErrorResponse{
		Message: "invalid request body",
		Error:   apperrors.KindName(apperrors.ErrValidation),
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body.Message = "validation failed"
		body.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			body.Fields[fe.Field()] = rule
		}
	} else {
		body.Details = err.Error()
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

// useJSONFieldNames makes validator report fields by their JSON name.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
}
