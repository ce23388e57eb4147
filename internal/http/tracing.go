package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/ext"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// Trace opens a Datadog span per request; repository spans nest under it.
// Without a started tracer the spans are no-ops.
func Trace(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource := c.Request.Method + " " + c.FullPath()
		span, ctx := tracer.StartSpanFromContext(c.Request.Context(), "http.request",
			tracer.ServiceName(service),
			tracer.SpanType(ext.SpanTypeWeb),
			tracer.ResourceName(resource),
			tracer.Tag(ext.HTTPMethod, c.Request.Method),
			tracer.Tag(ext.HTTPURL, c.Request.URL.Path),
		)
		defer span.Finish()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetTag(ext.HTTPCode, strconv.Itoa(status))
		if status >= http.StatusInternalServerError {
			if last := c.Errors.Last(); last != nil {
				span.SetTag(ext.Error, last.Err)
			}
		}
	}
}
