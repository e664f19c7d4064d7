package company

import "errors"

var (
	// ErrInvalidOwnerID は所有者 ID が不正な場合に返却されます。
	ErrInvalidOwnerID = errors.New("invalid owner id")
	// ErrInvalidRates は時給表の JSON が解釈できない場合に返却されます。
	ErrInvalidRates = errors.New("invalid rates")
)
