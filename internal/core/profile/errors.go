package profile

import "errors"

var (
	// ErrProfileNotFound はプロフィールが存在しない場合に返却されます。
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidToken はフィードトークンが一致しない場合に返却されます。
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidUserID はユーザーIDが不正な場合に返却されます。
	ErrInvalidUserID = errors.New("invalid user id")
)
