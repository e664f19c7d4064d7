package earnings

import "errors"

var (
	// ErrInvalidWindow は集計期間の指定が不正な場合に返却されます。
	ErrInvalidWindow = errors.New("invalid window")
	// ErrInvalidUserID はユーザー ID が不正な場合に返却されます。
	ErrInvalidUserID = errors.New("invalid user id")
)
