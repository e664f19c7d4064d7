package profile

import "time"

// Profile はユーザープロフィールのうちフィード購読に関わる部分です。
type Profile struct {
	ID        string
	FeedToken string
	UpdatedAt time.Time
}

// FeedEnabled はフィードトークンが発行済みかを返します。
func (p *Profile) FeedEnabled() bool {
	return p != nil && p.FeedToken != ""
}
