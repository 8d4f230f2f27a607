package server_test

import (
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/nusantaramc/cms/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUploadLifecycle(t *testing.T) {
	cases := []struct {
		resource    string
		folder      string
		imageKey    string
		fields      [][2]string
		updateField [2]string
	}{
		{
			resource:    "events",
			folder:      "events",
			imageKey:    "image",
			fields:      [][2]string{{"title", "Ride"}, {"date", "2025-01-01"}},
			updateField: [2]string{"title", "Night Ride"},
		},
		{
			resource:    "news",
			folder:      "news",
			imageKey:    "image",
			fields:      [][2]string{{"title", "Charity ride"}, {"content", "We rode for charity."}},
			updateField: [2]string{"title", "Charity ride recap"},
		},
		{
			resource:    "products",
			folder:      "products",
			imageKey:    "image",
			fields:      [][2]string{{"name", "Jersey"}, {"price", "150000"}, {"description", "Club jersey"}},
			updateField: [2]string{"stock", "7"},
		},
		{
			resource:    "milestones",
			folder:      "milestones",
			imageKey:    "image",
			fields:      [][2]string{{"year", "2019"}, {"title", "Founded"}, {"description", "First meeting"}},
			updateField: [2]string{"title", "Club founded"},
		},
		{
			resource:    "gallery",
			folder:      "gallery",
			imageKey:    "url",
			fields:      [][2]string{{"title", "Meetup"}, {"type", "image"}},
			updateField: [2]string{"title", "Meetup 2024"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.resource, func(t *testing.T) {
			app := newTestApp(t)

			create := newForm().file("image", "Cover Photo.png", pngBytes)
			for _, kv := range tc.fields {
				create.field(kv[0], kv[1])
			}
			w := app.do(t, http.MethodPost, "/api/"+tc.resource, create)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			created := decodeData(t, w)
			id := formatID(created["id"])
			firstFile := app.localFile(t, tc.folder, created[tc.imageKey])
			assert.FileExists(t, firstFile)
			assert.Contains(t, filepath.Base(firstFile), "Cover-Photo-")

			w = app.do(t, http.MethodGet, "/api/"+tc.resource+"/"+id, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, created[tc.imageKey], decodeData(t, w)[tc.imageKey])

			w = app.do(t, http.MethodPut, "/api/"+tc.resource+"/"+id, newForm().field(tc.updateField[0], tc.updateField[1]))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, created[tc.imageKey], decodeData(t, w)[tc.imageKey])
			assert.FileExists(t, firstFile)

			w = app.do(t, http.MethodPut, "/api/"+tc.resource+"/"+id, newForm().file("image", "second.png", pngBytes))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			secondFile := app.localFile(t, tc.folder, decodeData(t, w)[tc.imageKey])
			assert.FileExists(t, secondFile)
			assert.NoFileExists(t, firstFile)
			assert.Len(t, app.filesIn(t, tc.folder), 1)

			w = app.do(t, http.MethodDelete, "/api/"+tc.resource+"/"+id, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.NoFileExists(t, secondFile)
			assert.Empty(t, app.filesIn(t, tc.folder))

			w = app.do(t, http.MethodGet, "/api/"+tc.resource+"/"+id, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestClientPathsCannotClaimOtherFiles(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/events", newForm().
		field("title", "Ride").
		field("date", "2025-01-01").
		file("image", "poster.png", pngBytes))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	eventURL := decodeData(t, w)["image"].(string)
	eventFile := app.localFile(t, "events", eventURL)
	barePath := filepath.Join(app.cfg.UploadDir, "events", filepath.Base(eventFile))

	w = app.do(t, http.MethodPost, "/api/gallery", newForm().
		field("title", "Borrowed").
		field("type", "image").
		field("url", barePath))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/gallery", newForm().
		field("title", "Clip").
		field("type", "video").
		field("url", "https://youtu.be/x").
		field("thumbnailUrl", barePath))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = app.do(t, http.MethodPut, "/api/about", newForm().
		field("management", `[{"name":"Budi","photo_url":"`+filepath.ToSlash(barePath)+`"}]`))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// A rendered URL of another record's file is kept as an external link.
	w = app.do(t, http.MethodPost, "/api/gallery", newForm().
		field("title", "Linked").
		field("type", "image").
		field("url", eventURL))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	linked := decodeData(t, w)
	assert.Equal(t, eventURL, linked["url"])

	w = app.do(t, http.MethodDelete, "/api/gallery/"+formatID(linked["id"]), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.FileExists(t, eventFile)
}

func TestHomeRejectedUploadWritesNothing(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPut, "/api/home", newForm().
		field("hero_title", "Ride On").
		file("about_image", "about.png", pngBytes).
		file("cta_image", "cta.png", []byte("plain text, not an image")))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Empty(t, app.filesIn(t, "home"))

	var count int64
	require.NoError(t, app.db.Model(&models.HomeContent{}).Count(&count).Error)
	assert.Zero(t, count)

	w = app.do(t, http.MethodGet, "/api/home", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	home := decodeData(t, w)
	assert.Equal(t, models.DefaultHeroTitle, home["hero_title"])
	assert.Nil(t, home["about_image"])
	assert.Nil(t, home["cta_image"])
}

func TestHomeSaveFailureRemovesNewUploads(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPut, "/api/home", newForm().file("about_image", "about.png", pngBytes))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	aboutImage := decodeData(t, w)["about_image"]
	aboutFile := app.localFile(t, "home", aboutImage)

	require.NoError(t, app.db.Callback().Update().Before("gorm:update").Register("test:refuse_update", func(tx *gorm.DB) {
		tx.AddError(errors.New("update refused"))
	}))

	w = app.do(t, http.MethodPut, "/api/home", newForm().
		file("about_image", "about-2.png", pngBytes).
		file("cta_image", "cta.png", pngBytes))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, []string{filepath.Base(aboutFile)}, app.filesIn(t, "home"))

	w = app.do(t, http.MethodGet, "/api/home", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	home := decodeData(t, w)
	assert.Equal(t, aboutImage, home["about_image"])
	assert.Nil(t, home["cta_image"])
}

func TestAboutRejectedUploadWritesNothing(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPut, "/api/about", newForm().
		field("hero_title", "About Us").
		file("history_image", "history.txt", []byte("plain text, not an image")))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = app.do(t, http.MethodPut, "/api/about", newForm().
		field("management", `[{"name":"Budi"}]`).
		field("management_image_indexes", "0").
		file("management_images", "budi.txt", []byte("plain text, not an image")))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var count int64
	require.NoError(t, app.db.Model(&models.About{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, app.filesIn(t, "about"))
}
