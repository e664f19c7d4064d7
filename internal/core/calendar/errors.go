package calendar

import "errors"

// ErrInvalidEvent は出力できないイベントが含まれる場合に返却されます。
var ErrInvalidEvent = errors.New("invalid calendar event")
