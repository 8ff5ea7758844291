package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/specwise/backend/internal/domain"
	"github.com/specwise/backend/internal/infrastructure/summary"
	"github.com/specwise/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	phones     *usecase.PhoneService
	session    *usecase.Session
	summarizer domain.Summarizer
}

// NewHandler creates a new HTTP handler. The summarizer may be nil when the
// AI summary feature is disabled.
func NewHandler(phones *usecase.PhoneService, session *usecase.Session, summarizer domain.Summarizer) *Handler {
	return &Handler{
		phones:     phones,
		session:    session,
		summarizer: summarizer,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "specwise-backend",
		"version": "1.0.0",
	})
}

// SearchPhones handles candidate title search requests.
// A collaborator failure degrades to an empty candidate list.
func (h *Handler) SearchPhones(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	candidates := h.phones.SearchPhones(c.Request.Context(), query)
	if candidates == nil {
		candidates = []domain.Candidate{}
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// GetPhone fetches and parses one article into a structured spec
func (h *Handler) GetPhone(c *gin.Context) {
	title := c.Param("title")

	spec, err := h.phones.GetPhone(c.Request.Context(), title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"spec":       spec,
		"metrics":    usecase.DeriveMetrics(spec),
		"categories": usecase.CategoryView(spec),
	})
}

// compareRequest is the body of stateless comparison calls
type compareRequest struct {
	TitleA string `json:"titleA" binding:"required"`
	TitleB string `json:"titleB" binding:"required"`
}

// Compare resolves two titles and returns the full comparison
func (h *Handler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "titleA and titleB are required"})
		return
	}

	outcome, err := h.phones.ComparePhones(c.Request.Context(), req.TitleA, req.TitleB)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// CompareSummary resolves two titles and asks the external proxy for a
// natural-language summary. Any summarization failure degrades to a fixed
// message rather than an error response.
func (h *Handler) CompareSummary(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "titleA and titleB are required"})
		return
	}

	outcome, err := h.phones.ComparePhones(c.Request.Context(), req.TitleA, req.TitleB)
	if err != nil {
		respondError(c, err)
		return
	}

	text := summary.FailureMessage
	if h.summarizer != nil {
		prompt := usecase.BuildSummaryPrompt(outcome.MetricsA, outcome.MetricsB)
		if s, err := h.summarizer.Summarize(c.Request.Context(), prompt); err == nil {
			text = s
		}
	}

	c.JSON(http.StatusOK, gin.H{"summary": text})
}

// GetSession returns a snapshot of the comparison session
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Snapshot())
}

// ResetSession clears both slots
func (h *Handler) ResetSession(c *gin.Context) {
	h.session.Reset()
	c.Status(http.StatusNoContent)
}

// selectRequest is the body for populating a slot
type selectRequest struct {
	Title string `json:"title" binding:"required"`
}

// SelectSlot resolves a title into one comparison slot
func (h *Handler) SelectSlot(c *gin.Context) {
	slot, err := usecase.ParseSlot(c.Param("slot"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	spec, err := h.session.SelectPhone(c.Request.Context(), slot, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"spec": spec})
}

// queryRequest is the body for typeahead keystrokes
type queryRequest struct {
	Query string `json:"query"`
}

// UpdateSlotQuery records a typeahead keystroke; the search itself runs after
// the debounce delay and its results appear in the next session snapshot.
func (h *Handler) UpdateSlotQuery(c *gin.Context) {
	slot, err := usecase.ParseSlot(c.Param("slot"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.session.UpdateQuery(slot, req.Query); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

// respondError maps domain sentinel errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStaleResponse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSlotEmpty):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
