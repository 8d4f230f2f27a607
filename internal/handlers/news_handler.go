package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/internal/helpers"
	"github.com/nusantaramc/cms/internal/models"
)

const newsFolder = "news"

func renderNews(uploader *helpers.Uploader, news models.News) models.News {
	news.Image = uploader.PublicURL(newsFolder, news.Image)
	return news
}

func ListNews(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	query, err := paginate(c, gormDB.Model(&models.News{}).Order("date DESC").Order("id DESC"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	var items []models.News
	if err := query.Find(&items).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching news.", err)
		return
	}

	data := make([]models.News, 0, len(items))
	for _, item := range items {
		data = append(data, renderNews(uploader, item))
	}
	helpers.RespondWithSuccess(c, http.StatusOK, "", data)
}

func GetNews(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var news models.News
	if err := findByID(c, gormDB, &news); err != nil {
		respondLookupError(c, err, "News")
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "", renderNews(uploader, news))
}

func CreateNews(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	content := strings.TrimSpace(c.PostForm("content"))
	if title == "" || content == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Title and content are required.")
		return
	}

	date := time.Now()
	if value := c.PostForm("date"); strings.TrimSpace(value) != "" {
		parsed, err := helpers.ParseDate(value)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format.", err)
			return
		}
		date = parsed
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	imagePath, err := saveUpload(c, uploader, "image", newsFolder, helpers.DefaultImageUploadConfig)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	news := models.News{
		Title:        title,
		Excerpt:      strings.TrimSpace(c.PostForm("excerpt")),
		Content:      content,
		Date:         date,
		ExternalLink: strings.TrimSpace(c.PostForm("external_link")),
		Image:        imagePath,
	}

	if err := gormDB.Create(&news).Error; err != nil {
		uploader.RemoveAll(imagePath)
		helpers.RespondWithError(c, http.StatusBadRequest, "Error creating news.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusCreated, "News created successfully.", renderNews(uploader, news))
}

func UpdateNews(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var news models.News
	if err := findByID(c, gormDB, &news); err != nil {
		respondLookupError(c, err, "News")
		return
	}

	if setIfPresent(c, "title", &news.Title) && news.Title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Title cannot be empty.")
		return
	}
	if setIfPresent(c, "content", &news.Content) && news.Content == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Content cannot be empty.")
		return
	}
	if value, ok := c.GetPostForm("date"); ok && strings.TrimSpace(value) != "" {
		date, err := helpers.ParseDate(value)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format.", err)
			return
		}
		news.Date = date
	}
	setIfPresent(c, "excerpt", &news.Excerpt)
	setIfPresent(c, "external_link", &news.ExternalLink)

	imagePath, err := saveUpload(c, uploader, "image", newsFolder, helpers.DefaultImageUploadConfig)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	oldImage := news.Image
	if imagePath != nil {
		news.Image = imagePath
	}

	if err := gormDB.Save(&news).Error; err != nil {
		uploader.RemoveAll(imagePath)
		helpers.RespondWithError(c, http.StatusBadRequest, "Error updating news.", err)
		return
	}

	if imagePath != nil {
		uploader.RemoveAll(oldImage)
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "News updated successfully.", renderNews(uploader, news))
}

func DeleteNews(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var news models.News
	if err := findByID(c, gormDB, &news); err != nil {
		respondLookupError(c, err, "News")
		return
	}

	if err := gormDB.Delete(&news).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete news.", err)
		return
	}

	uploader.RemoveAll(news.Image)

	helpers.RespondWithSuccess(c, http.StatusOK, "News deleted successfully.", nil)
}
