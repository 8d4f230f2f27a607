package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/internal/helpers"
	"github.com/nusantaramc/cms/internal/models"
)

const galleryFolder = "gallery"

// renderGallery rewrites local paths only; video URLs point at external hosts
// and are returned as stored.
func renderGallery(uploader *helpers.Uploader, item models.Gallery) models.Gallery {
	if item.Type == models.GalleryTypeImage {
		if url := uploader.PublicURLString(galleryFolder, item.URL); url != nil {
			item.URL = *url
		}
	}
	item.ThumbnailURL = uploader.PublicURL(galleryFolder, item.ThumbnailURL)
	return item
}

func ListGallery(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Gallery{})
	if t := c.Query("type"); t != "" {
		if !models.IsValidGalleryType(t) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Type must be image or video.")
			return
		}
		query = query.Where("type = ?", t)
	}

	query, err := paginate(c, query.Order("created_at DESC").Order("id DESC"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	var items []models.Gallery
	if err := query.Find(&items).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching gallery items.", err)
		return
	}

	data := make([]models.Gallery, 0, len(items))
	for _, item := range items {
		data = append(data, renderGallery(uploader, item))
	}
	helpers.RespondWithSuccess(c, http.StatusOK, "", data)
}

func GetGalleryItem(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var item models.Gallery
	if err := findByID(c, gormDB, &item); err != nil {
		respondLookupError(c, err, "Gallery item")
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "", renderGallery(uploader, item))
}

func CreateGalleryItem(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	itemType := strings.TrimSpace(c.PostForm("type"))

	if title == "" || itemType == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Title and type are required.")
		return
	}
	if !models.IsValidGalleryType(itemType) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Type must be image or video.")
		return
	}

	uploader, ok := getUploader(c)
	if !ok {
		return
	}
	url, err := uploader.ClientValue(galleryFolder, c.PostForm("url"), "")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	thumbnail, err := uploader.ClientValue(galleryFolder, c.PostForm("thumbnailUrl"), "")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	fileSent := hasUpload(c, "image")
	switch itemType {
	case models.GalleryTypeVideo:
		if fileSent {
			helpers.RespondWithError(c, http.StatusBadRequest, "Video items do not accept file uploads.")
			return
		}
		if url == "" {
			helpers.RespondWithError(c, http.StatusBadRequest, "Video URL is required.")
			return
		}
	case models.GalleryTypeImage:
		if !fileSent && url == "" {
			helpers.RespondWithError(c, http.StatusBadRequest, "Image file is required for image type.")
			return
		}
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var imagePath *string
	if itemType == models.GalleryTypeImage {
		imagePath, err = saveUpload(c, uploader, "image", galleryFolder, helpers.DefaultImageUploadConfig)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		if imagePath != nil {
			url = *imagePath
		}
	}

	item := models.Gallery{
		Title:        title,
		Type:         itemType,
		URL:          url,
		ThumbnailURL: optionalString(thumbnail),
		Description:  optionalString(c.PostForm("description")),
	}

	if err := gormDB.Create(&item).Error; err != nil {
		uploader.RemoveAll(imagePath)
		helpers.RespondWithError(c, http.StatusBadRequest, "Error creating gallery item.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusCreated, "Gallery item created successfully.", renderGallery(uploader, item))
}

func UpdateGalleryItem(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var item models.Gallery
	if err := findByID(c, gormDB, &item); err != nil {
		respondLookupError(c, err, "Gallery item")
		return
	}

	finalType := item.Type
	if t := strings.TrimSpace(c.PostForm("type")); t != "" {
		if !models.IsValidGalleryType(t) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Type must be image or video.")
			return
		}
		finalType = t
	}

	if setIfPresent(c, "title", &item.Title) && item.Title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Title cannot be empty.")
		return
	}

	url, err := uploader.ClientValue(galleryFolder, c.PostForm("url"), item.URL)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	thumbnailSent := false
	var thumbnail string
	if value, ok := c.GetPostForm("thumbnailUrl"); ok {
		thumbnailSent = true
		thumbnail, err = uploader.ClientValue(galleryFolder, value, derefString(item.ThumbnailURL))
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
	}
	fileSent := hasUpload(c, "image")

	switch finalType {
	case models.GalleryTypeVideo:
		if fileSent {
			helpers.RespondWithError(c, http.StatusBadRequest, "Video items do not accept file uploads.")
			return
		}
		if item.Type != models.GalleryTypeVideo && url == "" {
			helpers.RespondWithError(c, http.StatusBadRequest, "Video URL is required when changing type to video.")
			return
		}
	case models.GalleryTypeImage:
		if !fileSent && item.Type != models.GalleryTypeImage && url == "" {
			helpers.RespondWithError(c, http.StatusBadRequest, "Image file is required when changing type to image.")
			return
		}
	}

	var imagePath *string
	if finalType == models.GalleryTypeImage {
		imagePath, err = saveUpload(c, uploader, "image", galleryFolder, helpers.DefaultImageUploadConfig)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		if imagePath != nil {
			url = *imagePath
		}
	}

	oldURL := item.URL
	oldThumbnail := item.ThumbnailURL
	if url != "" {
		item.URL = url
	}
	item.Type = finalType
	if thumbnailSent {
		item.ThumbnailURL = optionalString(thumbnail)
	}
	setOptionalIfPresent(c, "description", &item.Description)

	if err := gormDB.Save(&item).Error; err != nil {
		uploader.RemoveAll(imagePath)
		helpers.RespondWithError(c, http.StatusBadRequest, "Error updating gallery item.", err)
		return
	}

	if oldURL != item.URL {
		uploader.Remove(oldURL)
	}
	if oldThumbnail != nil && (item.ThumbnailURL == nil || *oldThumbnail != *item.ThumbnailURL) {
		uploader.Remove(*oldThumbnail)
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "Gallery item updated successfully.", renderGallery(uploader, item))
}

func DeleteGalleryItem(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var item models.Gallery
	if err := findByID(c, gormDB, &item); err != nil {
		respondLookupError(c, err, "Gallery item")
		return
	}

	if err := gormDB.Delete(&item).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete gallery item.", err)
		return
	}

	if item.Type == models.GalleryTypeImage {
		uploader.Remove(item.URL)
	}
	uploader.RemoveAll(item.ThumbnailURL)

	helpers.RespondWithSuccess(c, http.StatusOK, "Gallery item deleted successfully.", nil)
}
