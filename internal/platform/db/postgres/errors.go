package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// invalidTextRepresentation は UUID 列に不正な文字列を渡した場合などの SQLSTATE です。
const invalidTextRepresentation = "22P02"

// IsInvalidInput はパラメータが列の型として解釈できなかったエラーかを返します。
// 利用者が渡した ID が UUID 形式でない場合、該当行なしと同じ扱いにするために使います。
func IsInvalidInput(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}
