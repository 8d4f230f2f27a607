package helpers

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadConfig struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
}

var imageMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
}

var (
	DefaultImageUploadConfig = UploadConfig{
		MaxSizeBytes:     5 * 1024 * 1024, // 5MB
		AllowedMimeTypes: imageMimeTypes,
	}

	HomeImageUploadConfig = UploadConfig{
		MaxSizeBytes:     50 * 1024 * 1024, // 50MB
		AllowedMimeTypes: imageMimeTypes,
	}

	HomeVideoUploadConfig = UploadConfig{
		MaxSizeBytes: 50 * 1024 * 1024, // 50MB
		AllowedMimeTypes: []string{
			"video/mp4",
			"video/webm",
			"video/quicktime",
		},
	}
)

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// IsExternalURL reports whether a stored value is already an absolute URL
// rather than a path inside the upload directory.
func IsExternalURL(value string) bool {
	return schemePattern.MatchString(value)
}

// Uploader stores uploaded files under BaseDir/<folder> and renders stored
// paths as public URLs below BaseURL.
type Uploader struct {
	BaseDir string
	BaseURL string
}

func NewUploader(baseDir, baseURL string) *Uploader {
	return &Uploader{
		BaseDir: baseDir,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Validate checks the size and sniffed content type of an upload without
// writing anything to disk.
func (u *Uploader) Validate(fileHeader *multipart.FileHeader, config UploadConfig) error {
	if fileHeader.Size > config.MaxSizeBytes {
		return NewValidationError("file size exceeds maximum limit of %d MB", config.MaxSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return err
	}

	for _, allowedType := range config.AllowedMimeTypes {
		if mtype.Is(allowedType) {
			return nil
		}
	}
	return NewValidationError("invalid file type %s. Allowed types: %v", mtype.String(), config.AllowedMimeTypes)
}

// Save validates the upload and writes it to BaseDir/<folder> under a
// collision-free name. It returns the stored path.
func (u *Uploader) Save(c *gin.Context, fileHeader *multipart.FileHeader, folder string, config UploadConfig) (string, error) {
	if err := u.Validate(fileHeader, config); err != nil {
		return "", err
	}

	uploadPath := filepath.Join(u.BaseDir, folder)
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", err
	}

	fullFilepath := filepath.Join(uploadPath, UniqueFilename(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, fullFilepath); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return fullFilepath, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// UniqueFilename turns "Team Photo.JPG" into "Team-Photo-<millis>-<random>.JPG".
// Case is kept; runs of characters that are unsafe in a path or URL become "-".
func UniqueFilename(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	ext := filepath.Ext(base)
	name := unsafeFilenameChars.ReplaceAllString(strings.TrimSuffix(base, ext), "-")
	name = strings.Trim(name, "-.")
	ext = unsafeFilenameChars.ReplaceAllString(ext, "")
	if name == "" {
		name = "file"
	}
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s-%d-%s%s", name, time.Now().UnixMilli(), suffix, ext)
}

// Remove deletes a stored file. External URLs, empty values and paths outside
// BaseDir are ignored. Failures are logged and otherwise swallowed.
func (u *Uploader) Remove(storedPath string) {
	if storedPath == "" || IsExternalURL(storedPath) {
		return
	}
	if !u.owns(storedPath) {
		log.Printf("Refusing to delete file outside upload directory: %s", storedPath)
		return
	}
	if err := os.Remove(storedPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Error deleting file %s: %v", storedPath, err)
	}
}

// RemoveAll is Remove for optional values.
func (u *Uploader) RemoveAll(paths ...*string) {
	for _, p := range paths {
		if p != nil {
			u.Remove(*p)
		}
	}
}

func (u *Uploader) owns(storedPath string) bool {
	base, err := filepath.Abs(u.BaseDir)
	if err != nil {
		return false
	}
	target, err := filepath.Abs(storedPath)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// PublicURL renders a stored value for responses.
func (u *Uploader) PublicURL(folder string, stored *string) *string {
	if stored == nil {
		return nil
	}
	return u.PublicURLString(folder, *stored)
}

func (u *Uploader) PublicURLString(folder, stored string) *string {
	if stored == "" {
		return nil
	}
	if IsExternalURL(stored) {
		return &stored
	}
	url := fmt.Sprintf("%s/uploads/%s/%s", u.BaseURL, folder, filepath.Base(stored))
	return &url
}

// LocalPath maps a URL rendered by PublicURLString for folder back to the
// stored path, so clients that echo rendered values do not turn local files
// into external links. Any other value is returned unchanged.
func (u *Uploader) LocalPath(folder, value string) string {
	prefix := fmt.Sprintf("%s/uploads/%s/", u.BaseURL, folder)
	name, found := strings.CutPrefix(value, prefix)
	if !found || name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return value
	}
	return filepath.Join(u.BaseDir, folder, name)
}

// ClientValue checks a file reference sent by a client for a record whose
// stored value is current. Echoing the rendered URL of current keeps it, and
// any other absolute URL is stored as an external link. Bare paths are
// rejected so a record can never claim a file it did not upload.
func (u *Uploader) ClientValue(folder, value, current string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if current != "" && !IsExternalURL(current) && (value == current || u.LocalPath(folder, value) == current) {
		return current, nil
	}
	if !IsExternalURL(value) {
		return "", NewValidationError("%q must be an absolute URL", value)
	}
	return value, nil
}
