package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ogurasousui/poolcalendar/internal/core/calendar"
	"github.com/ogurasousui/poolcalendar/internal/core/feed"
)

// Feed は購読用の iCalendar フィードを返します。
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	h.serveCalendar(w, r, "inline", calendar.FeedFilename)
}

// Download は同じ内容を添付ファイルとして返します。
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	h.serveCalendar(w, r, "attachment", calendar.DefaultFilename)
}

func (h *Handler) serveCalendar(w http.ResponseWriter, r *http.Request, disposition, filename string) {
	q := r.URL.Query()

	body, err := h.feed.Feed(r.Context(), feed.FeedInput{
		UserID: q.Get("user"),
		Token:  q.Get("token"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", calendar.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// credentials はクエリから user と token を取り出します。
// 空白だけの値は未指定として扱いますが、token 自体は比較のため加工しません。
func credentials(q url.Values) (string, string, error) {
	userID := strings.TrimSpace(q.Get("user"))
	token := q.Get("token")
	if userID == "" || strings.TrimSpace(token) == "" {
		return "", "", feed.ErrMissingParams
	}
	return userID, token, nil
}
