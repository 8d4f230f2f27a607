package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/internal/helpers"
	"github.com/nusantaramc/cms/internal/models"
	"gorm.io/datatypes"
)

const milestonesFolder = "milestones"

func renderMilestone(uploader *helpers.Uploader, milestone models.Milestone) models.Milestone {
	milestone.Image = uploader.PublicURL(milestonesFolder, milestone.Image)
	if milestone.Achievements == nil {
		milestone.Achievements = datatypes.JSONSlice[string]{}
	}
	return milestone
}

func ListMilestones(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	query, err := paginate(c, gormDB.Model(&models.Milestone{}).Order("year DESC").Order("id DESC"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	var milestones []models.Milestone
	if err := query.Find(&milestones).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching milestones.", err)
		return
	}

	data := make([]models.Milestone, 0, len(milestones))
	for _, milestone := range milestones {
		data = append(data, renderMilestone(uploader, milestone))
	}
	helpers.RespondWithSuccess(c, http.StatusOK, "", data)
}

func GetMilestone(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var milestone models.Milestone
	if err := findByID(c, gormDB, &milestone); err != nil {
		respondLookupError(c, err, "Milestone")
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "", renderMilestone(uploader, milestone))
}

func CreateMilestone(c *gin.Context) {
	year := strings.TrimSpace(c.PostForm("year"))
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	if year == "" || title == "" || description == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Year, title, and description are required.")
		return
	}

	achievements, err := helpers.ParseStringList(c.PostFormArray("achievements"), true)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid achievements.", err)
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

	imagePath, err := saveUpload(c, uploader, "image", milestonesFolder, helpers.DefaultImageUploadConfig)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	milestone := models.Milestone{
		Year:         year,
		Title:        title,
		Description:  description,
		Achievements: achievements,
		Image:        imagePath,
	}

	if err := gormDB.Create(&milestone).Error; err != nil {
		uploader.RemoveAll(imagePath)
		helpers.RespondWithError(c, http.StatusBadRequest, "Error creating milestone.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusCreated, "Milestone created successfully.", renderMilestone(uploader, milestone))
}

func UpdateMilestone(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var milestone models.Milestone
	if err := findByID(c, gormDB, &milestone); err != nil {
		respondLookupError(c, err, "Milestone")
		return
	}

	if setIfPresent(c, "year", &milestone.Year) && milestone.Year == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Year cannot be empty.")
		return
	}
	if setIfPresent(c, "title", &milestone.Title) && milestone.Title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Title cannot be empty.")
		return
	}
	if setIfPresent(c, "description", &milestone.Description) && milestone.Description == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Description cannot be empty.")
		return
	}
	if raw, ok := c.GetPostFormArray("achievements"); ok {
		achievements, err := helpers.ParseStringList(raw, true)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid achievements.", err)
			return
		}
		milestone.Achievements = achievements
	}

	imagePath, err := saveUpload(c, uploader, "image", milestonesFolder, helpers.DefaultImageUploadConfig)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	oldImage := milestone.Image
	if imagePath != nil {
		milestone.Image = imagePath
	}

	if err := gormDB.Save(&milestone).Error; err != nil {
		uploader.RemoveAll(imagePath)
		helpers.RespondWithError(c, http.StatusBadRequest, "Error updating milestone.", err)
		return
	}

	if imagePath != nil {
		uploader.RemoveAll(oldImage)
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "Milestone updated successfully.", renderMilestone(uploader, milestone))
}

func DeleteMilestone(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var milestone models.Milestone
	if err := findByID(c, gormDB, &milestone); err != nil {
		respondLookupError(c, err, "Milestone")
		return
	}

	if err := gormDB.Delete(&milestone).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete milestone.", err)
		return
	}

	uploader.RemoveAll(milestone.Image)

	helpers.RespondWithSuccess(c, http.StatusOK, "Milestone deleted successfully.", nil)
}
