package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/internal/helpers"
	"github.com/nusantaramc/cms/internal/middleware"
	"github.com/nusantaramc/cms/internal/models"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const productsFolder = "products"

func renderProduct(uploader *helpers.Uploader, product models.Product) models.Product {
	product.Image = uploader.PublicURL(productsFolder, product.Image)
	return product
}

// maxPrice is the largest value a decimal(10,2) column holds.
const maxPrice = 99999999.99

func parsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, helpers.NewValidationError("price must be a number greater than or equal to 0")
	}
	if price > maxPrice {
		return 0, helpers.NewValidationError("price must not exceed %.2f", maxPrice)
	}
	return price, nil
}

func parseStock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	stock, err := strconv.Atoi(s)
	if err != nil || stock < 0 {
		return 0, helpers.NewValidationError("stock must be a whole number greater than or equal to 0")
	}
	return stock, nil
}

// resolveCategory looks up a category by numeric id or slug.
func resolveCategory(gormDB *gorm.DB, ref string) (*models.Category, error) {
	var category models.Category
	query := gormDB.Where("slug = ?", ref)
	if id, ok := helpers.ParseID(ref); ok {
		query = gormDB.Where("id = ?", id)
	}
	if err := query.First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// categoryFromForm validates the categoryId field. It returns (nil, nil)
// when the field is empty.
func categoryFromForm(gormDB *gorm.DB, value string) (*models.Category, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	id, ok := helpers.ParseID(value)
	if !ok {
		return nil, helpers.NewValidationError("categoryId must be a category id")
	}

	var category models.Category
	if err := gormDB.First(&category, id).Error; err != nil {
		if helpers.IsNotFound(err) {
			return nil, helpers.NewValidationError("category %d does not exist", id)
		}
		return nil, err
	}
	return &category, nil
}

func ListProducts(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Product{}).Preload("Category")
	if ref := strings.TrimSpace(c.Query("category")); ref != "" {
		category, err := resolveCategory(gormDB, ref)
		if err != nil {
			if helpers.IsNotFound(err) {
				helpers.RespondWithSuccess(c, http.StatusOK, "", []models.Product{})
				return
			}
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching products.", err)
			return
		}
		query = query.Where("category_id = ?", category.ID)
	}

	query, err := paginate(c, query.Order("created_at DESC").Order("id DESC"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching products.", err)
		return
	}

	data := make([]models.Product, 0, len(products))
	for _, product := range products {
		data = append(data, renderProduct(uploader, product))
	}
	helpers.RespondWithSuccess(c, http.StatusOK, "", data)
}

func GetProduct(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var product models.Product
	if err := findByID(c, gormDB.Preload("Category"), &product); err != nil {
		respondLookupError(c, err, "Product")
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "", renderProduct(uploader, product))
}

func CreateProduct(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	if name == "" || description == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Name and description are required.")
		return
	}

	price, err := parsePrice(c.PostForm("price"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	stock, err := parseStock(c.PostForm("stock"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
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

	category, err := categoryFromForm(gormDB, c.PostForm("categoryId"))
	if err != nil {
		helpers.RespondWithError(c, helpers.StatusForError(err), err.Error(), err)
		return
	}

	imagePath, err := saveUpload(c, uploader, "image", productsFolder, helpers.DefaultImageUploadConfig)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	product := models.Product{
		Name:           name,
		Price:          price,
		Description:    description,
		Stock:          stock,
		Image:          imagePath,
		WhatsAppNumber: strings.TrimSpace(c.PostForm("whatsapp_number")),
	}
	if category != nil {
		product.CategoryID = &category.ID
	}

	if err := gormDB.Omit(clause.Associations).Create(&product).Error; err != nil {
		uploader.RemoveAll(imagePath)
		helpers.RespondWithError(c, http.StatusBadRequest, "Error creating product.", err)
		return
	}
	product.Category = category

	helpers.RespondWithSuccess(c, http.StatusCreated, "Product created successfully.", renderProduct(uploader, product))
}

func UpdateProduct(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var product models.Product
	if err := findByID(c, gormDB, &product); err != nil {
		respondLookupError(c, err, "Product")
		return
	}

	if setIfPresent(c, "name", &product.Name) && product.Name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Name cannot be empty.")
		return
	}
	if setIfPresent(c, "description", &product.Description) && product.Description == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Description cannot be empty.")
		return
	}
	if value, ok := c.GetPostForm("price"); ok {
		price, err := parsePrice(value)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		product.Price = price
	}
	if value, ok := c.GetPostForm("stock"); ok {
		stock, err := parseStock(value)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		product.Stock = stock
	}
	if value, ok := c.GetPostForm("categoryId"); ok {
		category, err := categoryFromForm(gormDB, value)
		if err != nil {
			helpers.RespondWithError(c, helpers.StatusForError(err), err.Error(), err)
			return
		}
		product.CategoryID = nil
		if category != nil {
			product.CategoryID = &category.ID
		}
	}
	setIfPresent(c, "whatsapp_number", &product.WhatsAppNumber)

	imagePath, err := saveUpload(c, uploader, "image", productsFolder, helpers.DefaultImageUploadConfig)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	oldImage := product.Image
	if imagePath != nil {
		product.Image = imagePath
	}

	if err := gormDB.Omit(clause.Associations).Save(&product).Error; err != nil {
		uploader.RemoveAll(imagePath)
		helpers.RespondWithError(c, http.StatusBadRequest, "Error updating product.", err)
		return
	}

	if imagePath != nil {
		uploader.RemoveAll(oldImage)
	}

	if err := gormDB.Preload("Category").First(&product, product.ID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching product.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "Product updated successfully.", renderProduct(uploader, product))
}

func DeleteProduct(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var product models.Product
	if err := findByID(c, gormDB, &product); err != nil {
		respondLookupError(c, err, "Product")
		return
	}

	if err := gormDB.Delete(&product).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product.", err)
		return
	}

	uploader.RemoveAll(product.Image)

	helpers.RespondWithSuccess(c, http.StatusOK, "Product deleted successfully.", nil)
}

// GetProductWhatsAppQR renders a PNG QR code that opens a WhatsApp chat to
// order the product.
func GetProductWhatsAppQR(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var product models.Product
	if err := findByID(c, gormDB, &product); err != nil {
		respondLookupError(c, err, "Product")
		return
	}

	number := product.WhatsAppNumber
	if number == "" {
		if cfg := middleware.GetConfig(c); cfg != nil {
			number = cfg.WhatsAppNumber
		}
	}

	link, ok := helpers.WhatsAppLink(number, fmt.Sprintf("Halo, saya ingin memesan %s", product.Name))
	if !ok {
		helpers.RespondWithError(c, http.StatusBadRequest, "Product has no WhatsApp number.")
		return
	}

	size := 256
	if value := c.Query("size"); value != "" {
		parsed, err := helpers.StringToInt(value)
		if err != nil || parsed < 128 || parsed > 1024 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Size must be between 128 and 1024.")
			return
		}
		size = parsed
	}

	qrImage, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.", err)
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
