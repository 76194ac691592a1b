package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"cvstudio/internal/customize"
	"cvstudio/internal/render"
)

// editorPrefsTTL bounds how long we remember a user's editor state. Dormant
// accounts fall back to defaults.
const editorPrefsTTL = 30 * 24 * time.Hour

// PrefsHandler persists per-user editor preferences (last selected template
// and customization) in Redis so the editor reopens where the user left off.
type PrefsHandler struct {
	redisClient redis.UniversalClient
}

func NewPrefsHandler(redisClient redis.UniversalClient) *PrefsHandler {
	return &PrefsHandler{redisClient: redisClient}
}

type editorPrefs struct {
	TemplateID    string                  `json:"template_id"`
	Customization customize.Customization `json:"customization"`
}

func editorPrefsKey(userID uint) string {
	return fmt.Sprintf("prefs:editor:%d", userID)
}

// GET /v1/preferences/editor
// Returns the stored preferences, or catalog defaults for a fresh user.
func (h *PrefsHandler) GetEditorPrefs(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	raw, err := h.redisClient.Get(c.Request.Context(), editorPrefsKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.JSON(http.StatusOK, editorPrefs{
				TemplateID:    string(render.TemplateClassic),
				Customization: customize.Default(),
			})
			return
		}
		Internal(c, "failed to load preferences")
		return
	}

	var prefs editorPrefs
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		// Stale or corrupt entry; drop it and hand back defaults.
		_ = h.redisClient.Del(c.Request.Context(), editorPrefsKey(userID)).Err()
		c.JSON(http.StatusOK, editorPrefs{
			TemplateID:    string(render.TemplateClassic),
			Customization: customize.Default(),
		})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

type updateEditorPrefsRequest struct {
	TemplateID    *string          `json:"template_id"`
	Customization *customize.Patch `json:"customization"`
}

// PUT /v1/preferences/editor
// Merges the request into the stored preferences and refreshes the TTL.
func (h *PrefsHandler) UpdateEditorPrefs(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req updateEditorPrefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()

	prefs := editorPrefs{
		TemplateID:    string(render.TemplateClassic),
		Customization: customize.Default(),
	}
	if raw, err := h.redisClient.Get(ctx, editorPrefsKey(userID)).Result(); err == nil {
		_ = json.Unmarshal([]byte(raw), &prefs)
	}

	if req.TemplateID != nil {
		if _, ok := render.Get(render.TemplateID(*req.TemplateID)); !ok {
			BadRequest(c, "unknown template id")
			return
		}
		prefs.TemplateID = *req.TemplateID
	}
	if req.Customization != nil {
		merged := prefs.Customization.Merge(*req.Customization)
		if err := customize.Validate(merged); err != nil {
			BadRequest(c, err.Error())
			return
		}
		prefs.Customization = merged
	}

	payload, err := json.Marshal(prefs)
	if err != nil {
		Internal(c, "failed to encode preferences")
		return
	}

	if err := h.redisClient.Set(ctx, editorPrefsKey(userID), payload, editorPrefsTTL).Err(); err != nil {
		Internal(c, "failed to store preferences")
		return
	}

	c.JSON(http.StatusOK, prefs)
}
