package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/internal/helpers"
	"github.com/nusantaramc/cms/internal/models"
	"gorm.io/datatypes"
)

const (
	aboutFolder           = "about"
	maxManagementImages   = 50
	managementImagesField = "management_images"
)

func renderAbout(uploader *helpers.Uploader, about models.About) models.About {
	about.HistoryImageURL = uploader.PublicURL(aboutFolder, about.HistoryImageURL)
	if about.Values == nil {
		about.Values = datatypes.JSONSlice[string]{}
	}

	management := make(datatypes.JSONSlice[models.ManagementMember], 0, len(about.Management))
	for _, member := range about.Management {
		rendered := copyMember(member)
		if photo := uploader.PublicURLString(aboutFolder, member.Photo()); photo != nil {
			rendered[models.PhotoKey] = *photo
		} else {
			rendered[models.PhotoKey] = nil
		}
		management = append(management, rendered)
	}
	about.Management = management
	return about
}

func copyMember(member models.ManagementMember) models.ManagementMember {
	out := make(models.ManagementMember, len(member))
	for k, v := range member {
		out[k] = v
	}
	return out
}

// mergeManagement applies the submitted entries over the stored ones index by
// index. Keys sent by the client win; keys it left out are kept. A submitted
// photo_url must echo the entry's current photo or be an absolute URL.
func mergeManagement(uploader *helpers.Uploader, existing, submitted []models.ManagementMember) (datatypes.JSONSlice[models.ManagementMember], error) {
	merged := make(datatypes.JSONSlice[models.ManagementMember], 0, len(submitted))
	for i, entry := range submitted {
		member := models.ManagementMember{}
		if i < len(existing) {
			member = copyMember(existing[i])
		}
		current := member.Photo()
		for k, v := range entry {
			member[k] = v
		}
		if photo, ok := entry[models.PhotoKey].(string); ok {
			value, err := uploader.ClientValue(aboutFolder, photo, current)
			if err != nil {
				return nil, err
			}
			if value == "" {
				member[models.PhotoKey] = nil
			} else {
				member[models.PhotoKey] = value
			}
		}
		merged = append(merged, member)
	}
	return merged, nil
}

func managementPhotos(members []models.ManagementMember) map[string]struct{} {
	photos := make(map[string]struct{}, len(members))
	for _, member := range members {
		if photo := member.Photo(); photo != "" {
			photos[photo] = struct{}{}
		}
	}
	return photos
}

func GetAbout(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	about, err := helpers.LoadSingleton(gormDB, models.DefaultAbout)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching about content.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "", renderAbout(uploader, *about))
}

func UpdateAbout(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	uploader, ok := getUploader(c)
	if !ok {
		return
	}

	var managementFiles []*multipart.FileHeader
	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid multipart form.", err)
		return
	}
	if form != nil {
		managementFiles = form.File[managementImagesField]
	}
	if len(managementFiles) > maxManagementImages {
		helpers.RespondWithError(c, http.StatusBadRequest, "Too many management images.")
		return
	}

	if err := validateUpload(c, uploader, "history_image", helpers.DefaultImageUploadConfig); err != nil {
		respondUploadError(c, err)
		return
	}
	for _, fileHeader := range managementFiles {
		if err := uploader.Validate(fileHeader, helpers.DefaultImageUploadConfig); err != nil {
			respondUploadError(c, err)
			return
		}
	}

	about, err := helpers.LoadSingleton(gormDB, models.DefaultAbout)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching about content.", err)
		return
	}

	setIfPresent(c, "hero_title", &about.HeroTitle)
	setIfPresent(c, "hero_tagline", &about.HeroTagline)
	setIfPresent(c, "history_title", &about.HistoryTitle)
	setIfPresent(c, "history_text", &about.HistoryText)
	setIfPresent(c, "vision_title", &about.VisionTitle)
	setIfPresent(c, "vision_text", &about.VisionText)
	setIfPresent(c, "mission_title", &about.MissionTitle)
	setIfPresent(c, "mission_text", &about.MissionText)
	setIfPresent(c, "contact_phone", &about.ContactPhone)
	setIfPresent(c, "contact_email", &about.ContactEmail)
	setIfPresent(c, "contact_address", &about.ContactAddress)

	if raw, ok := c.GetPostFormArray("values"); ok {
		if values, err := helpers.ParseStringList(raw, false); err == nil {
			about.Values = values
		}
	}

	oldManagement := []models.ManagementMember(about.Management)
	management := make(datatypes.JSONSlice[models.ManagementMember], 0, len(oldManagement))
	for _, member := range oldManagement {
		management = append(management, copyMember(member))
	}
	if raw := strings.TrimSpace(c.PostForm("management")); raw != "" {
		var submitted []models.ManagementMember
		if err := json.Unmarshal([]byte(raw), &submitted); err == nil {
			management, err = mergeManagement(uploader, oldManagement, submitted)
			if err != nil {
				helpers.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
				return
			}
		}
	}

	var saved []*string
	cleanup := func() { uploader.RemoveAll(saved...) }

	historyImage, err := saveUpload(c, uploader, "history_image", aboutFolder, helpers.DefaultImageUploadConfig)
	if err != nil {
		respondUploadError(c, err)
		return
	}
	saved = append(saved, historyImage)

	indexes := helpers.ParseIndexList(c.PostFormArray("management_image_indexes"))
	for i, fileHeader := range managementFiles {
		index := -1
		if i < len(indexes) {
			index = indexes[i]
		}
		// Files that do not address an entry are never written.
		if index < 0 || index >= len(management) {
			continue
		}

		path, err := uploader.Save(c, fileHeader, aboutFolder, helpers.DefaultImageUploadConfig)
		if err != nil {
			cleanup()
			respondUploadError(c, err)
			return
		}
		saved = append(saved, &path)
		management[index][models.PhotoKey] = path
	}

	oldHistoryImage := about.HistoryImageURL
	if historyImage != nil {
		about.HistoryImageURL = historyImage
	}
	about.Management = management

	if err := gormDB.Save(about).Error; err != nil {
		cleanup()
		helpers.RespondWithError(c, http.StatusBadRequest, "Error updating about content.", err)
		return
	}

	if historyImage != nil {
		uploader.RemoveAll(oldHistoryImage)
	}
	current := managementPhotos(management)
	for photo := range managementPhotos(oldManagement) {
		if _, kept := current[photo]; !kept {
			uploader.Remove(photo)
		}
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "About content updated successfully.", renderAbout(uploader, *about))
}
