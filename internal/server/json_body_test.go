package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventFromJSON(t *testing.T) {
	app := newTestApp(t)

	w := app.doJSON(t, http.MethodPost, "/api/events", map[string]any{
		"title":    "Ride",
		"date":     "2025-01-01",
		"location": "HQ",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	event := decodeData(t, w)
	assert.Equal(t, "Ride", event["title"])
	assert.Equal(t, "HQ", event["location"])
	assert.Nil(t, event["image"])

	w = app.doJSON(t, http.MethodPut, "/api/events/"+formatID(event["id"]), map[string]any{"location": "Bandung"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeData(t, w)
	assert.Equal(t, "Bandung", updated["location"])
	assert.Equal(t, "Ride", updated["title"])

	w = app.doJSON(t, http.MethodPost, "/api/events", map[string]any{"date": "2025-01-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title is required.", decode(t, w).Message)
}

func TestCreateGalleryVideoFromJSON(t *testing.T) {
	app := newTestApp(t)

	w := app.doJSON(t, http.MethodPost, "/api/gallery", map[string]any{
		"title":        "Clip",
		"type":         "video",
		"url":          "https://youtu.be/x",
		"thumbnailUrl": nil,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decodeData(t, w)
	assert.Equal(t, "video", item["type"])
	assert.Equal(t, "https://youtu.be/x", item["url"])
	assert.Nil(t, item["thumbnailUrl"])

	w = app.doJSON(t, http.MethodPost, "/api/gallery", map[string]any{"title": "Clip", "type": "video"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Video URL is required.", decode(t, w).Message)
}

func TestProductAndMilestoneFromJSON(t *testing.T) {
	app := newTestApp(t)
	category := createCategory(t, app, "Apparel")

	w := app.doJSON(t, http.MethodPost, "/api/products", map[string]any{
		"name":        "Jersey",
		"price":       150000,
		"description": "Club jersey",
		"stock":       10,
		"categoryId":  category["id"],
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product := decodeData(t, w)
	assert.EqualValues(t, 150000, product["price"])
	assert.EqualValues(t, 10, product["stock"])
	assert.Equal(t, category["id"], product["categoryId"])

	w = app.doJSON(t, http.MethodPut, "/api/products/"+formatID(product["id"]), map[string]any{"price": "NaN"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.doJSON(t, http.MethodPost, "/api/milestones", map[string]any{
		"year":         2019,
		"title":        "Founded",
		"description":  "First meeting",
		"achievements": []string{"First rally", "20 members"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	milestone := decodeData(t, w)
	assert.Equal(t, "2019", milestone["year"])
	assert.Equal(t, []any{"First rally", "20 members"}, milestone["achievements"])
}

func TestMalformedJSONBody(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid JSON body.", env.Message)
}
