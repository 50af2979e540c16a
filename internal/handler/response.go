package handler

import (
	"errors"
	"net/http"
	"sort"

	"caller_id_server/pkg/constants"
	"caller_id_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ResponseData is the success envelope.
// Errors use {statusCode, message, success:false, errors, data:null}.
type ResponseData struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// statusByCode maps business codes onto HTTP status. Conflicts and bad
// credentials are 400 on this API.
var statusByCode = map[int]int{
	errorx.CodeInvalidParam:       http.StatusBadRequest,
	errorx.CodeUserExist:          http.StatusBadRequest,
	errorx.CodeInvalidCredentials: http.StatusBadRequest,
	errorx.CodeUnauthenticated:    http.StatusUnauthorized,
	errorx.CodeForbidden:          http.StatusForbidden,
	errorx.CodeNotFound:           http.StatusNotFound,
}

// HTTPStatus returns the status for a business code, 500 for anything unmapped.
func HTTPStatus(code int) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// HandleSuccess writes a 200 envelope.
func HandleSuccess(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, ResponseData{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// HandleError writes the error envelope for err.
// A *errorx.CodeError with a client code shows its message; everything else
// is logged and reported as a generic 500 without internals.
//
//	if err := svc.DoSomething(ctx); err != nil {
//	    HandleError(c, err)
//	    return
//	}
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		status := HTTPStatus(codeErr.Code)
		if status < http.StatusInternalServerError {
			writeError(c, status, codeErr.Msg, nil)
			return
		}
	}

	zap.L().Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("request_id", c.GetString(constants.CtxRequestID)),
		zap.Error(err),
	)
	writeError(c, http.StatusInternalServerError, errorx.ErrServerBusy.Msg, nil)
}

// HandleParamError reports a binding failure as 400. Validation errors are
// translated and listed per field.
func HandleParamError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		translated := RemoveTopStruct(validationErrs.Translate(Trans))
		details := make([]string, 0, len(translated))
		for _, msg := range translated {
			details = append(details, msg)
		}
		sort.Strings(details)
		writeError(c, http.StatusBadRequest, errorx.ErrInvalidParam.Msg, details)
		return
	}

	// malformed JSON and the like
	zap.L().Debug("param bind error", zap.Error(err))
	writeError(c, http.StatusBadRequest, errorx.ErrInvalidParam.Msg, nil)
}

func writeError(c *gin.Context, status int, msg string, details []string) {
	if details == nil {
		details = []string{}
	}
	c.AbortWithStatusJSON(status, gin.H{
		"statusCode": status,
		"message":    msg,
		"success":    false,
		"errors":     details,
		"data":       nil,
	})
}
