package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"cvstudio/internal/ai"
	"cvstudio/internal/cv"
	"cvstudio/internal/errcode"
)

// aiRateLimitPerHour caps assistant calls per user. The upstream provider
// bills per request; this keeps a single user from burning the quota.
const aiRateLimitPerHour = 30

// AIHandler fronts the AI assistant service: CV analysis, text improvement,
// job matching and free-text extraction.
type AIHandler struct {
	client      *ai.Client
	redisClient redis.UniversalClient
}

func NewAIHandler(client *ai.Client, redisClient redis.UniversalClient) *AIHandler {
	return &AIHandler{client: client, redisClient: redisClient}
}

type analyzeRequest struct {
	Content cv.CVData `json:"content"`
}

type improveRequest struct {
	Text    string `json:"text" binding:"required"`
	Context string `json:"context"`
}

type matchJobRequest struct {
	Content        cv.CVData `json:"content"`
	JobDescription string    `json:"job_description" binding:"required"`
}

type extractRequest struct {
	Text string `json:"text" binding:"required"`
}

// POST /v1/ai/analyze
func (h *AIHandler) Analyze(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if !h.allowRequest(c, userID) {
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	analysis, err := h.client.Analyze(c.Request.Context(), req.Content)
	if err != nil {
		h.replyAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// POST /v1/ai/improve
func (h *AIHandler) ImproveText(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if !h.allowRequest(c, userID) {
		return
	}

	var req improveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	improved, err := h.client.ImproveText(c.Request.Context(), req.Text, req.Context)
	if err != nil {
		h.replyAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": improved})
}

// POST /v1/ai/match
func (h *AIHandler) MatchJob(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if !h.allowRequest(c, userID) {
		return
	}

	var req matchJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	match, err := h.client.MatchJob(c.Request.Context(), req.Content, req.JobDescription)
	if err != nil {
		h.replyAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// POST /v1/ai/extract
// Turns pasted free text (an old résumé, a LinkedIn dump) into structured CV
// content the editor can load.
func (h *AIHandler) ExtractFromText(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if !h.allowRequest(c, userID) {
		return
	}

	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	extracted, err := h.client.ExtractFromText(c.Request.Context(), req.Text)
	if err != nil {
		h.replyAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": extracted})
}

// allowRequest enforces the hourly per-user budget. A Redis outage fails
// open; the assistant staying up matters more than exact accounting.
func (h *AIHandler) allowRequest(c *gin.Context, userID uint) bool {
	key := fmt.Sprintf("rate:ai:%d:%s", userID, time.Now().UTC().Format("2006010215"))
	count, err := incrWithTTL(c.Request.Context(), h.redisClient, key, time.Hour)
	if err != nil {
		return true
	}
	if count > aiRateLimitPerHour {
		TooManyRequests(c, "ai request limit reached, try again later")
		return false
	}
	return true
}

func (h *AIHandler) replyAIError(c *gin.Context, err error) {
	var aiErr *ai.Error
	if errors.As(err, &aiErr) {
		switch aiErr.Code {
		case errcode.Validation:
			BadRequest(c, aiErr.Message)
		case errcode.RateLimit:
			TooManyRequests(c, aiErr.Message)
		default:
			Error(c, http.StatusBadGateway, errcode.Unknown, "ai service unavailable")
		}
		return
	}
	Error(c, http.StatusBadGateway, errcode.Unknown, "ai service unavailable")
}
