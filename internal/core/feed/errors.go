package feed

import "errors"

var (
	// ErrMissingParams はユーザーまたはトークンが指定されていない場合に返却されます。
	ErrMissingParams = errors.New("missing user or token")
	// ErrInvalidToken はトークンが一致しない場合に返却されます。
	ErrInvalidToken = errors.New("invalid token")
	// ErrNoShifts はユーザーにシフトが 1 件も無い場合に返却されます。
	ErrNoShifts = errors.New("no shifts found")
)
