package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"caller_id_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[int]int{
		errorx.CodeInvalidParam:       http.StatusBadRequest,
		errorx.CodeUserExist:          http.StatusBadRequest,
		errorx.CodeInvalidCredentials: http.StatusBadRequest,
		errorx.CodeUnauthenticated:    http.StatusUnauthorized,
		errorx.CodeForbidden:          http.StatusForbidden,
		errorx.CodeNotFound:           http.StatusNotFound,
		errorx.CodeDBError:            http.StatusInternalServerError,
		errorx.CodeDuplicate:          http.StatusInternalServerError,
		errorx.CodeServerBusy:         http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatus(code); got != want {
			t.Errorf("HTTPStatus(%d) = %d, want %d", code, got, want)
		}
	}
}

func run(t *testing.T, fn gin.HandlerFunc) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return w.Code, body
}

func TestHandleErrorShowsClientMessages(t *testing.T) {
	status, body := run(t, func(c *gin.Context) {
		HandleError(c, errorx.Wrap(errors.New("record not found"), errorx.CodeNotFound, "User not found"))
	})
	if status != http.StatusNotFound || body["message"] != "User not found" || body["success"] != false {
		t.Fatalf("status=%d body=%v", status, body)
	}
	if errs, ok := body["errors"].([]any); !ok || len(errs) != 0 {
		t.Fatalf("errors = %v", body["errors"])
	}
}

func TestHandleErrorHidesServerFailures(t *testing.T) {
	status, body := run(t, func(c *gin.Context) {
		HandleError(c, errorx.Wrap(errors.New("dial tcp 10.0.0.1:5432"), errorx.CodeDBError, "find user id=1"))
	})
	if status != http.StatusInternalServerError || body["message"] != "Something went wrong" {
		t.Fatalf("status=%d body=%v", status, body)
	}
}

func TestHandleSuccessEnvelope(t *testing.T) {
	status, body := run(t, func(c *gin.Context) {
		HandleSuccess(c, gin.H{"token": "x"}, "Login successful")
	})
	if status != http.StatusOK || body["success"] != true || body["statusCode"] != float64(200) || body["message"] != "Login successful" {
		t.Fatalf("status=%d body=%v", status, body)
	}
}

func TestCurrentUserIDWithoutMiddleware(t *testing.T) {
	status, _ := run(t, func(c *gin.Context) {
		if _, ok := currentUserID(c); ok {
			t.Fatal("expected missing user id")
		}
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d", status)
	}
}
