package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/strengthscope-backend/internal/pkg/ctxutil"
)

func traceRouter(capture **ctxutil.TraceData) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/ping", func(c *gin.Context) {
		*capture = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAttachTraceContextPropagatesCallerIDs(t *testing.T) {
	var td *ctxutil.TraceData
	r := traceRouter(&td)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerRequestID, "req-123")
	req.Header.Set(headerTraceID, "trace-456")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if td == nil {
		t.Fatal("trace data not attached to request context")
	}
	if td.RequestID != "req-123" || td.TraceID != "trace-456" {
		t.Errorf("trace data = %+v", td)
	}
	if got := w.Header().Get(headerTraceID); got != "trace-456" {
		t.Errorf("response trace header = %q", got)
	}
	if got := w.Header().Get(headerRequestID); got != "req-123" {
		t.Errorf("response request header = %q", got)
	}
}

func TestAttachTraceContextGeneratesMissingIDs(t *testing.T) {
	var td *ctxutil.TraceData
	r := traceRouter(&td)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if td == nil {
		t.Fatal("trace data not attached to request context")
	}
	if td.TraceID == "" || td.RequestID == "" {
		t.Errorf("generated ids missing: %+v", td)
	}
	if w.Header().Get(headerTraceID) != td.TraceID {
		t.Error("response trace header does not match context")
	}
	if w.Header().Get(headerRequestID) != td.RequestID {
		t.Error("response request header does not match context")
	}
}
