package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBodyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type bound struct {
		Title string `json:"title"`
	}

	var fields map[string]string
	var rebound bound
	r := gin.New()
	r.Use(JSONBodyMiddleware())
	r.POST("/", func(c *gin.Context) {
		fields = map[string]string{}
		for _, key := range []string{"title", "price", "active", "thumbnailUrl", "achievements"} {
			value, ok := c.GetPostForm(key)
			if ok {
				fields[key] = value
			}
		}
		rebound = bound{}
		_ = c.ShouldBindJSON(&rebound)
		c.Status(http.StatusNoContent)
	})

	send := func(contentType, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send("application/json; charset=utf-8", `{"title":"Ride","price":150000.5,"active":true,"thumbnailUrl":null,"achievements":["a","b"]}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, map[string]string{
		"title":        "Ride",
		"price":        "150000.5",
		"active":       "true",
		"thumbnailUrl": "",
		"achievements": `["a","b"]`,
	}, fields)
	assert.Equal(t, "Ride", rebound.Title)

	w = send("application/json", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid JSON body.")

	w = send("application/json", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, fields)

	w = send("application/x-www-form-urlencoded", "title=Form")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, map[string]string{"title": "Form"}, fields)
}
