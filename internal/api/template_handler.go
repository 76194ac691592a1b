package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"cvstudio/internal/render"
)

// TemplateHandler serves the read-only template catalog.
type TemplateHandler struct {
	redisClient redis.UniversalClient
}

func NewTemplateHandler(redisClient redis.UniversalClient) *TemplateHandler {
	return &TemplateHandler{redisClient: redisClient}
}

type templateCatalogItem struct {
	render.Metadata
	PreviewImageURL string `json:"preview_image_url,omitempty"`
}

// templatePreviewKey is where the preview worker publishes the presigned
// thumbnail URL for one template.
func templatePreviewKey(id render.TemplateID) string {
	return "template_preview:" + string(id)
}

// GET /v1/templates
// Lists the catalog, optionally filtered by ?category= or ?layout=.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	var templates []render.Metadata

	switch {
	case c.Query("category") != "":
		templates = render.ByCategory(render.Category(c.Query("category")))
	case c.Query("layout") != "":
		templates = render.ByLayout(render.LayoutShape(c.Query("layout")))
	default:
		templates = render.All()
	}

	items := make([]templateCatalogItem, 0, len(templates))
	for _, m := range templates {
		items = append(items, templateCatalogItem{
			Metadata:        m,
			PreviewImageURL: h.previewURL(c, m.ID),
		})
	}

	c.JSON(http.StatusOK, items)
}

// GET /v1/templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	meta, ok := render.Get(render.TemplateID(c.Param("id")))
	if !ok {
		NotFound(c, "template not found")
		return
	}

	c.JSON(http.StatusOK, templateCatalogItem{
		Metadata:        meta,
		PreviewImageURL: h.previewURL(c, meta.ID),
	})
}

// previewURL returns the cached thumbnail URL, or empty when the preview
// worker has not produced one yet. Cache misses are not errors; the catalog
// stays usable without thumbnails.
func (h *TemplateHandler) previewURL(c *gin.Context, id render.TemplateID) string {
	if h.redisClient == nil {
		return ""
	}
	url, err := h.redisClient.Get(c.Request.Context(), templatePreviewKey(id)).Result()
	if err != nil {
		return ""
	}
	return url
}
