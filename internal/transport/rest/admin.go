package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vecindario/backend/internal/domain"
	"github.com/vecindario/backend/internal/service/broadcast"
	"github.com/vecindario/backend/internal/service/content"
	"github.com/vecindario/backend/internal/transport/middleware"
	"github.com/vecindario/backend/pkg/ctxutil"
)

// contentService defines the minimal interface needed by AdminHandler.
type contentService interface {
	PublishNews(ctx context.Context, authorID uuid.UUID, in content.PublishNewsInput) (*domain.NewsItem, broadcast.Result, error)
	PublishNotice(ctx context.Context, authorID uuid.UUID, in content.PublishNoticeInput) (*domain.Notice, broadcast.Result, error)
}

// AdminHandler serves the content-publication admin endpoints. Requests
// reach it through the Auth middleware, so the context always carries an
// operator identity and role.
type AdminHandler struct {
	content contentService
	log     *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(content contentService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		content: content,
		log:     logger.With("handler", "admin"),
	}
}

type publishNewsRequest struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

type publishNoticeRequest struct {
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Priority string     `json:"priority"`
	StartsAt *time.Time `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
}

type newsResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

type noticeResponse struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Priority string     `json:"priority"`
	Status   string     `json:"status"`
	StartsAt time.Time  `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt,omitempty"`
}

type publishNewsResponse struct {
	News      newsResponse     `json:"news"`
	Broadcast broadcast.Result `json:"broadcast"`
}

type publishNoticeResponse struct {
	Notice    noticeResponse   `json:"notice"`
	Broadcast broadcast.Result `json:"broadcast"`
}

// PublishNews handles POST /admin/news.
func (h *AdminHandler) PublishNews(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequirePublisher(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req publishNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	authorID, _ := ctxutil.UserIDFromCtx(r.Context())
	item, res, err := h.content.PublishNews(r.Context(), authorID, content.PublishNewsInput{
		Title:    req.Title,
		Summary:  req.Summary,
		Body:     req.Body,
		Category: domain.NewsCategory(req.Category),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, publishNewsResponse{
		News: newsResponse{
			ID:          item.ID.String(),
			Title:       item.Title,
			Summary:     item.Summary,
			Category:    string(item.Category),
			Status:      string(item.Status),
			PublishedAt: item.PublishedAt,
		},
		Broadcast: res,
	})
}

// PublishNotice handles POST /admin/notices.
func (h *AdminHandler) PublishNotice(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequirePublisher(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req publishNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	in := content.PublishNoticeInput{
		Title:    req.Title,
		Message:  req.Message,
		Priority: domain.NoticePriority(req.Priority),
		EndsAt:   req.EndsAt,
	}
	if req.StartsAt != nil {
		in.StartsAt = *req.StartsAt
	}

	authorID, _ := ctxutil.UserIDFromCtx(r.Context())
	n, res, err := h.content.PublishNotice(r.Context(), authorID, in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, publishNoticeResponse{
		Notice: noticeResponse{
			ID:       n.ID.String(),
			Title:    n.Title,
			Message:  n.Message,
			Priority: string(n.Priority),
			Status:   string(n.Status),
			StartsAt: n.StartsAt,
			EndsAt:   n.EndsAt,
		},
		Broadcast: res,
	})
}
