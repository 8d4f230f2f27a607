package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/internal/helpers"
	"github.com/nusantaramc/cms/internal/models"
)

const homeFolder = "home"

func renderHome(uploader *helpers.Uploader, home models.HomeContent) models.HomeContent {
	home.BgVideo = uploader.PublicURL(homeFolder, home.BgVideo)
	home.AboutImage = uploader.PublicURL(homeFolder, home.AboutImage)
	home.CTAImage = uploader.PublicURL(homeFolder, home.CTAImage)
	return home
}

func GetHome(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	home, err := helpers.LoadSingleton(gormDB, models.DefaultHomeContent)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching home content.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "", renderHome(uploader, *home))
}

type homeUpload struct {
	field  string
	config helpers.UploadConfig
	target func(*models.HomeContent) **string
}

var homeUploads = []homeUpload{
	{field: "bg_video", config: helpers.HomeVideoUploadConfig, target: func(h *models.HomeContent) **string { return &h.BgVideo }},
	{field: "about_image", config: helpers.HomeImageUploadConfig, target: func(h *models.HomeContent) **string { return &h.AboutImage }},
	{field: "cta_image", config: helpers.HomeImageUploadConfig, target: func(h *models.HomeContent) **string { return &h.CTAImage }},
}

func UpdateHome(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	for _, upload := range homeUploads {
		if err := validateUpload(c, uploader, upload.field, upload.config); err != nil {
			respondUploadError(c, err)
			return
		}
	}

	home, err := helpers.LoadSingleton(gormDB, models.DefaultHomeContent)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching home content.", err)
		return
	}

	setIfPresent(c, "hero_title", &home.HeroTitle)
	setIfPresent(c, "hero_tagline", &home.HeroTagline)

	var saved, superseded []*string
	for _, upload := range homeUploads {
		path, err := saveUpload(c, uploader, upload.field, homeFolder, upload.config)
		if err != nil {
			uploader.RemoveAll(saved...)
			respondUploadError(c, err)
			return
		}
		if path == nil {
			continue
		}
		saved = append(saved, path)
		target := upload.target(home)
		superseded = append(superseded, *target)
		*target = path
	}

	if err := gormDB.Save(home).Error; err != nil {
		uploader.RemoveAll(saved...)
		helpers.RespondWithError(c, http.StatusBadRequest, "Error updating home content.", err)
		return
	}

	uploader.RemoveAll(superseded...)

	helpers.RespondWithSuccess(c, http.StatusOK, "Home content updated successfully.", renderHome(uploader, *home))
}
