package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/internal/helpers"
	"github.com/nusantaramc/cms/internal/middleware"
	"gorm.io/gorm"
)

func getDB(c *gin.Context) (*gorm.DB, bool) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	return gormDB.WithContext(c.Request.Context()), true
}

func getUploader(c *gin.Context) (*helpers.Uploader, bool) {
	uploader := middleware.GetUploader(c)
	if uploader == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upload storage not configured.")
		return nil, false
	}
	return uploader, true
}

// findByID loads the record addressed by the :id path parameter. A malformed
// id is reported as not found.
func findByID(c *gin.Context, gormDB *gorm.DB, dest any) error {
	id, ok := helpers.ParseID(c.Param("id"))
	if !ok {
		return gorm.ErrRecordNotFound
	}
	return gormDB.First(dest, id).Error
}

func respondLookupError(c *gin.Context, err error, resource string) {
	if helpers.IsNotFound(err) {
		helpers.RespondWithError(c, http.StatusNotFound, resource+" not found.")
		return
	}
	helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching "+strings.ToLower(resource)+".", err)
}

func paginate(c *gin.Context, query *gorm.DB) (*gorm.DB, error) {
	p, err := helpers.ParsePagination(c.Query("page"), c.Query("limit"))
	if err != nil {
		return nil, err
	}
	if p.Limit > 0 {
		query = query.Offset(p.Offset()).Limit(p.Limit)
	}
	return query, nil
}

// saveUpload stores the file sent under field, if any. It returns nil when
// the request carries no such file.
func saveUpload(c *gin.Context, uploader *helpers.Uploader, field, folder string, config helpers.UploadConfig) (*string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, helpers.NewValidationError("invalid upload for field %q: %v", field, err)
	}

	path, err := uploader.Save(c, fileHeader, folder, config)
	if err != nil {
		return nil, err
	}
	return &path, nil
}

// validateUpload checks the file sent under field, if any, without storing
// it. Handlers that must not touch the database for a rejected upload call it
// before their first query.
func validateUpload(c *gin.Context, uploader *helpers.Uploader, field string, config helpers.UploadConfig) error {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil
		}
		return helpers.NewValidationError("invalid upload for field %q: %v", field, err)
	}
	return uploader.Validate(fileHeader, config)
}

func hasUpload(c *gin.Context, field string) bool {
	_, err := c.FormFile(field)
	return err == nil
}

func respondUploadError(c *gin.Context, err error) {
	if helpers.IsValidationError(err) {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	helpers.RespondWithError(c, http.StatusInternalServerError, "Error storing uploaded file.", err)
}

// setIfPresent overwrites *dst with the trimmed form value when the field was
// sent at all, so partial updates keep omitted fields.
func setIfPresent(c *gin.Context, field string, dst *string) bool {
	value, ok := c.GetPostForm(field)
	if !ok {
		return false
	}
	*dst = strings.TrimSpace(value)
	return true
}

// setOptionalIfPresent is setIfPresent for nullable columns; an empty value
// clears the column.
func setOptionalIfPresent(c *gin.Context, field string, dst **string) bool {
	value, ok := c.GetPostForm(field)
	if !ok {
		return false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		*dst = nil
	} else {
		*dst = &value
	}
	return true
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
