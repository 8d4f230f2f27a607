package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/internal/helpers"
	"github.com/nusantaramc/cms/internal/models"
)

const eventsFolder = "events"

func renderEvent(uploader *helpers.Uploader, event models.Event) models.Event {
	event.Image = uploader.PublicURL(eventsFolder, event.Image)
	return event
}

func ListEvents(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	query, err := paginate(c, gormDB.Model(&models.Event{}).Order("date DESC").Order("id DESC"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching events.", err)
		return
	}

	data := make([]models.Event, 0, len(events))
	for _, event := range events {
		data = append(data, renderEvent(uploader, event))
	}
	helpers.RespondWithSuccess(c, http.StatusOK, "", data)
}

func GetEvent(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var event models.Event
	if err := findByID(c, gormDB, &event); err != nil {
		respondLookupError(c, err, "Event")
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "", renderEvent(uploader, event))
}

func CreateEvent(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Title is required.")
		return
	}

	date, err := helpers.ParseDate(c.PostForm("date"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format.", err)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	imagePath, err := saveUpload(c, uploader, "image", eventsFolder, helpers.DefaultImageUploadConfig)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	event := models.Event{
		Title:            title,
		Description:      strings.TrimSpace(c.PostForm("description")),
		Date:             date,
		Location:         strings.TrimSpace(c.PostForm("location")),
		RegistrationLink: strings.TrimSpace(c.PostForm("registration_link")),
		Image:            imagePath,
	}

	if err := gormDB.Create(&event).Error; err != nil {
		uploader.RemoveAll(imagePath)
		helpers.RespondWithError(c, http.StatusBadRequest, "Error creating event.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusCreated, "Event created successfully.", renderEvent(uploader, event))
}

func UpdateEvent(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var event models.Event
	if err := findByID(c, gormDB, &event); err != nil {
		respondLookupError(c, err, "Event")
		return
	}

	if setIfPresent(c, "title", &event.Title) && event.Title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Title cannot be empty.")
		return
	}
	if value, ok := c.GetPostForm("date"); ok && strings.TrimSpace(value) != "" {
		date, err := helpers.ParseDate(value)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format.", err)
			return
		}
		event.Date = date
	}
	setIfPresent(c, "description", &event.Description)
	setIfPresent(c, "location", &event.Location)
	setIfPresent(c, "registration_link", &event.RegistrationLink)

	imagePath, err := saveUpload(c, uploader, "image", eventsFolder, helpers.DefaultImageUploadConfig)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	oldImage := event.Image
	if imagePath != nil {
		event.Image = imagePath
	}

	if err := gormDB.Save(&event).Error; err != nil {
		uploader.RemoveAll(imagePath)
		helpers.RespondWithError(c, http.StatusBadRequest, "Error updating event.", err)
		return
	}

	if imagePath != nil {
		uploader.RemoveAll(oldImage)
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "Event updated successfully.", renderEvent(uploader, event))
}

func DeleteEvent(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var event models.Event
	if err := findByID(c, gormDB, &event); err != nil {
		respondLookupError(c, err, "Event")
		return
	}

	if err := gormDB.Delete(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.", err)
		return
	}

	uploader.RemoveAll(event.Image)

	helpers.RespondWithSuccess(c, http.StatusOK, "Event deleted successfully.", nil)
}
