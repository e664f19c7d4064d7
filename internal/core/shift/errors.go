package shift

import "errors"

var (
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidUserID はユーザー ID が不正な場合に返却されます。
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrInvalidTimeRange は終了時刻が開始時刻より後でない場合に返却されます。
	ErrInvalidTimeRange = errors.New("end must be after start")
	// ErrInvalidBreak は休憩時間が負の場合に返却されます。
	ErrInvalidBreak = errors.New("invalid break duration")
)
