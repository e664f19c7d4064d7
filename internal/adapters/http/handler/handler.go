package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ogurasousui/poolcalendar/internal/core/earnings"
	"github.com/ogurasousui/poolcalendar/internal/core/feed"
	"github.com/ogurasousui/poolcalendar/internal/core/profile"
)

// ProfileUseCase はハンドラーが利用するプロフィール操作です。
type ProfileUseCase interface {
	VerifyFeedToken(ctx context.Context, userID, token string) error
	RotateFeedToken(ctx context.Context, in profile.RotateFeedTokenInput) (*profile.Profile, error)
}

// Handler はカレンダーフィードと収入集計の HTTP 実装です。
type Handler struct {
	feed     feed.UseCase
	earnings earnings.UseCase
	profiles ProfileUseCase
	now      func() time.Time
}

// NewHandler は Handler を生成します。
func NewHandler(feedSvc feed.UseCase, earningsSvc earnings.UseCase, profiles ProfileUseCase) *Handler {
	return &Handler{
		feed:     feedSvc,
		earnings: earningsSvc,
		profiles: profiles,
		now:      time.Now,
	}
}

// Routes は全エンドポイントを登録したルーターを返します。
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/health", h.Health)
	r.Get("/ical", h.Feed)
	r.Get("/ical/download", h.Download)

	r.Route("/api", func(r chi.Router) {
		r.Get("/earnings", h.Earnings)
		r.Post("/profile/feed-token", h.RotateFeedToken)
	})

	return r
}

// Health は死活監視用のエンドポイントです。
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "OK")
}
