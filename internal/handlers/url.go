package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/serroba/shorturl-service/internal/analytics"
	"github.com/serroba/shorturl-service/internal/messaging"
	"github.com/serroba/shorturl-service/internal/shortener"
	"go.uber.org/zap"
)

// URLService is the subset of shortener.Service the gateway depends on.
type URLService interface {
	Create(ctx context.Context, originalURL string) (*shortener.ShortURL, error)
	Resolve(ctx context.Context, code string) (string, error)
	List(ctx context.Context) ([]*shortener.ShortURL, error)
}

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service            URLService
	publishURLCreated  messaging.Publish[analytics.URLCreatedEvent]
	publishURLAccessed messaging.Publish[analytics.URLAccessedEvent]
	logger             *zap.Logger
	now                func() time.Time
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service URLService,
	publishURLCreated messaging.Publish[analytics.URLCreatedEvent],
	publishURLAccessed messaging.Publish[analytics.URLAccessedEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:            service,
		publishURLCreated:  publishURLCreated,
		publishURLAccessed: publishURLAccessed,
		logger:             logger,
		now:                time.Now,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	shortURL, err := h.service.Create(ctx, req.Body.OriginalURL)
	if err != nil {
		return nil, writeError(h.logger, "create short url", err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLCreatedEvent{
		Code:        string(shortURL.Code),
		OriginalURL: shortURL.OriginalURL,
		CreatedAt:   shortURL.CreatedAt,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
	}

	if err := h.publishURLCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish analytics event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	return &CreateShortURLResponse{Body: toBody(shortURL)}, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	originalURL, err := h.service.Resolve(ctx, req.Code)
	if err != nil {
		return nil, writeError(h.logger, "resolve short url", err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLAccessedEvent{
		Code:       req.Code,
		AccessedAt: h.now().UTC(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err = h.publishURLAccessed(ctx, event); err != nil {
		h.logger.Error("failed to publish access event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	return &RedirectResponse{
		Status:   http.StatusPermanentRedirect,
		Location: originalURL,
	}, nil
}

func (h *URLHandler) ListShortURLs(ctx context.Context, _ *struct{}) (*ListShortURLsResponse, error) {
	urls, err := h.service.List(ctx)
	if err != nil {
		return nil, writeError(h.logger, "list short urls", err)
	}

	resp := &ListShortURLsResponse{Body: make([]ShortURLBody, 0, len(urls))}
	for _, u := range urls {
		resp.Body = append(resp.Body, toBody(u))
	}

	return resp, nil
}

// Banner answers the root path with a plain text liveness message.
func (h *URLHandler) Banner(_ context.Context, _ *struct{}) (*BannerResponse, error) {
	return &BannerResponse{
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(BannerText),
	}, nil
}

func toBody(s *shortener.ShortURL) ShortURLBody {
	return ShortURLBody{
		ShortURL:    string(s.Code),
		OriginalURL: s.OriginalURL,
	}
}
