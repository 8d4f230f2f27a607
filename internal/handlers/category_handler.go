package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/nusantaramc/cms/internal/helpers"
	"github.com/nusantaramc/cms/internal/models"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name string `json:"name" form:"name" binding:"required,min=2"`
}

func bindCategory(c *gin.Context) (string, bool) {
	var req CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.", err)
		return "", false
	}

	name := strings.TrimSpace(req.Name)
	if slug.Make(name) == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Category name must contain letters or digits.")
		return "", false
	}
	return name, true
}

func slugTaken(gormDB *gorm.DB, name string, exceptID uint) (bool, error) {
	var count int64
	err := gormDB.Model(&models.Category{}).
		Where("slug = ? AND id <> ?", slug.Make(name), exceptID).
		Count(&count).Error
	return count > 0, err
}

func ListCategories(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	query, err := paginate(c, gormDB.Model(&models.Category{}).Order("name ASC").Order("id ASC"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	categories := []models.Category{}
	if err := query.Find(&categories).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching categories.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "", categories)
}

func GetCategory(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var category models.Category
	if err := findByID(c, gormDB, &category); err != nil {
		respondLookupError(c, err, "Category")
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "", category)
}

func CreateCategory(c *gin.Context) {
	name, ok := bindCategory(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	taken, err := slugTaken(gormDB, name, 0)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error creating category.", err)
		return
	}
	if taken {
		helpers.RespondWithError(c, http.StatusConflict, "Category already exists.")
		return
	}

	category := models.Category{Name: name}
	if err := gormDB.Create(&category).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error creating category.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusCreated, "Category created successfully.", category)
}

func UpdateCategory(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var category models.Category
	if err := findByID(c, gormDB, &category); err != nil {
		respondLookupError(c, err, "Category")
		return
	}

	name, ok := bindCategory(c)
	if !ok {
		return
	}

	taken, err := slugTaken(gormDB, name, category.ID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error updating category.", err)
		return
	}
	if taken {
		helpers.RespondWithError(c, http.StatusConflict, "Category already exists.")
		return
	}

	category.Name = name
	if err := gormDB.Save(&category).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error updating category.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "Category updated successfully.", category)
}

func DeleteCategory(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var category models.Category
	if err := findByID(c, gormDB, &category); err != nil {
		respondLookupError(c, err, "Category")
		return
	}

	var productCount int64
	if err := gormDB.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error deleting category.", err)
		return
	}
	if productCount > 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Cannot delete category with associated products.")
		return
	}

	if err := gormDB.Delete(&category).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error deleting category.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "Category deleted successfully.", nil)
}
