package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"cvstudio/internal/render"
)

func TestListTemplatesReturnsFullCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/templates", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.ListTemplates(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var items []templateCatalogItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != len(render.All()) {
		t.Fatalf("expected %d templates, got %d", len(render.All()), len(items))
	}
}

func TestListTemplatesFiltersByCategory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/templates?category=professional", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.ListTemplates(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var items []templateCatalogItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected at least one professional template")
	}
	for _, item := range items {
		if item.Category != render.CategoryProfessional {
			t.Fatalf("unexpected category %q in filtered list", item.Category)
		}
	}
}

func TestGetTemplateUnknownIDIs404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/templates/does-not-exist", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "does-not-exist"}}

	h.GetTemplate(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}
