package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/nusantaramc/cms/internal/helpers"
)

// JSONBodyMiddleware lets content handlers read a JSON object body through
// the same PostForm accessors they use for form posts. Scalars become their
// string form, null becomes "", and arrays or objects are re-encoded as JSON
// text. The raw body is restored so binding handlers can still decode it.
func JSONBodyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.ContentType() != binding.MIMEJSON {
			c.Next()
			return
		}

		var payload map[string]any
		err := c.ShouldBindBodyWith(&payload, binding.JSON)
		if raw, ok := c.Get(gin.BodyBytesKey); ok {
			if body, ok := raw.([]byte); ok {
				c.Request.Body = io.NopCloser(bytes.NewReader(body))
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.Next()
				return
			}
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid JSON body.", err)
			return
		}

		values := make(url.Values, len(payload))
		for key, value := range payload {
			values.Set(key, jsonFieldString(value))
		}
		c.Request.PostForm = values
		c.Next()
	}
}

func jsonFieldString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
