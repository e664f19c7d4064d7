package shift

import "context"

// Repository はシフトの読み出しを行うインターフェースです。
type Repository interface {
	// ListByUser はユーザーのシフトを開始時刻の昇順で返します。
	ListByUser(ctx context.Context, userID string) ([]Shift, error)
}
