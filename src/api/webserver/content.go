package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/defi-mexico/platform-backend/src/api/types"
)

// Content serves the public display pages. Reads only; records are
// created by the moderation pipeline.
type Content struct {
	db *gorm.DB
}

func NewContent(db *gorm.DB) Content {
	return Content{db: db}
}

// URL path segment → fresh model instance for the target table.
func contentModel(segment string) types.PublishedRecord {
	switch segment {
	case "startups":
		return &types.Startup{}
	case "events":
		return &types.Event{}
	case "communities":
		return &types.Community{}
	case "referents":
		return &types.Referent{}
	case "courses":
		return &types.Course{}
	case "blog":
		return &types.BlogPost{}
	case "jobs":
		return &types.Job{}
	}
	return nil
}

func (h Content) List(c *gin.Context) {
	model := contentModel(c.Param("type"))
	if model == nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "unknown content type"})
		return
	}

	segment := c.Param("type")
	q := h.db.Table(model.TableName()).Order("created_at DESC").Limit(100)
	if cat := c.Query("category"); cat != "" && (segment == "startups" || segment == "communities") {
		q = q.Where("category = ?", cat)
	}
	if c.Query("featured") == "true" && (segment == "startups" || segment == "events") {
		q = q.Where("is_featured = ?", true)
	}

	var out []map[string]interface{}
	if err := q.Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "something went wrong, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h Content) Get(c *gin.Context) {
	model := contentModel(c.Param("type"))
	if model == nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "unknown content type"})
		return
	}

	if err := h.db.Where("slug = ?", c.Param("slug")).First(model).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "not found"})
		return
	}

	// Engagement counter; failure here is not worth a 500.
	_ = h.db.Model(model).UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error

	c.JSON(http.StatusOK, model)
}
