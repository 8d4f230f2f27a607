package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/config"
	"github.com/nusantaramc/cms/internal/helpers"
	"gorm.io/gorm"
)

const (
	dbKey       = "db"
	uploaderKey = "uploader"
	configKey   = "config"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, db)
		c.Next()
	}
}

func GetDB(c *gin.Context) *gorm.DB {
	db, exists := c.Get(dbKey)
	if !exists {
		return nil
	}
	return db.(*gorm.DB)
}

func UploaderMiddleware(uploader *helpers.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(uploaderKey, uploader)
		c.Next()
	}
}

func GetUploader(c *gin.Context) *helpers.Uploader {
	uploader, exists := c.Get(uploaderKey)
	if !exists {
		return nil
	}
	return uploader.(*helpers.Uploader)
}

func ConfigMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(configKey, cfg)
		c.Next()
	}
}

func GetConfig(c *gin.Context) *config.Config {
	cfg, exists := c.Get(configKey)
	if !exists {
		return nil
	}
	return cfg.(*config.Config)
}
