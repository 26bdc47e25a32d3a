package webserver

import (
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/defi-mexico/platform-backend/src/api/moderation"
	"github.com/defi-mexico/platform-backend/src/api/types"
)

type Proposals struct {
	svc       *moderation.Service
	sanitizer *bluemonday.Policy
}

func NewProposals(svc *moderation.Service) Proposals {
	// Strict policy with the basic markdown formatting submitters use in
	// descriptions and blog bodies.
	sanitizer := bluemonday.StrictPolicy()
	sanitizer.AllowElements("p", "br", "strong", "em", "code", "pre", "blockquote")
	sanitizer.AllowElements("ul", "ol", "li")
	sanitizer.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	sanitizer.AllowAttrs("href").OnElements("a")
	sanitizer.RequireParseableURLs(true)
	sanitizer.AddTargetBlankToFullyQualifiedLinks(true)
	sanitizer.RequireNoFollowOnLinks(true)

	return Proposals{svc: svc, sanitizer: sanitizer}
}

func (h Proposals) Create(c *gin.Context) {
	var req struct {
		ContentType string                 `json:"contentType" binding:"required,max=32"`
		ContentData map[string]interface{} `json:"contentData" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if !types.ValidContentType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "unknown content type"})
		return
	}

	data := h.sanitizeMap(req.ContentData)
	for _, v := range data {
		if s, ok := v.(string); ok && !utf8.ValidString(s) {
			c.JSON(http.StatusBadRequest, gin.H{"err": "invalid characters in input"})
			return
		}
	}

	p, err := h.svc.Create(c.Request.Context(), req.ContentType, data, c.GetUint64("uid"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h Proposals) List(c *gin.Context) {
	filter := moderation.ProposalFilter{
		Status:      c.Query("status"),
		ContentType: c.Query("type"),
	}
	if by := c.Query("proposedBy"); by != "" {
		id, _ := strconv.ParseUint(by, 10, 64)
		filter.ProposedBy = id
	}
	// Non-admins only ever see their own submissions.
	if !c.GetBool("admin") {
		filter.ProposedBy = c.GetUint64("uid")
	}

	proposals, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": proposals})
}

func (h Proposals) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid proposal id"})
		return
	}

	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !c.GetBool("admin") && detail.ProposedBy != c.GetUint64("uid") {
		c.JSON(http.StatusForbidden, gin.H{"err": "not authorized for this proposal"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h Proposals) Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid proposal id"})
		return
	}
	var req struct {
		Notes string `json:"notes" binding:"max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	p, err := h.svc.Approve(c.Request.Context(), id, c.GetUint64("uid"), req.Notes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h Proposals) Reject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid proposal id"})
		return
	}
	var req struct {
		Notes string `json:"notes" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "rejection notes are required"})
		return
	}

	p, err := h.svc.Reject(c.Request.Context(), id, c.GetUint64("uid"), req.Notes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h Proposals) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid proposal id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// sanitizeMap runs every string value through the HTML sanitizer,
// descending into nested objects and arrays.
func (h Proposals) sanitizeMap(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = h.sanitizeValue(v)
	}
	return out
}

func (h Proposals) sanitizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return h.sanitizer.Sanitize(t)
	case map[string]interface{}:
		return h.sanitizeMap(t)
	case []interface{}:
		for i, e := range t {
			t[i] = h.sanitizeValue(e)
		}
		return t
	default:
		return v
	}
}

// Store-level failures stay generic; the caller only gets detail for the
// errors it can act on.
func (h Proposals) writeError(c *gin.Context, err error) {
	var ipe *moderation.InvalidPayloadError
	switch {
	case errors.Is(err, moderation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"err": "proposal not found"})
	case errors.Is(err, moderation.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"err": "proposal was already reviewed"})
	case errors.Is(err, moderation.ErrAuth):
		c.JSON(http.StatusUnauthorized, gin.H{"err": "not authenticated"})
	case errors.As(err, &ipe):
		c.JSON(http.StatusBadRequest, gin.H{"err": ipe.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"err": "something went wrong, try again"})
	}
}
