package company

import "sort"

// DefaultCompanyID は組み込み会社を表す予約済み ID です。
const DefaultCompanyID = "milanosport"

const (
	// UnknownCompanyName はカレンダーの説明欄で会社が解決できない場合の表示名です。
	UnknownCompanyName = "Società non specificata"
	// UnknownSummaryName は収入集計で会社が解決できない場合の表示名です。
	UnknownSummaryName = "Sconosciuta"
)

// Company は時給表と施設一覧を持つ会社エンティティです。
type Company struct {
	ID      string
	OwnerID string
	Name    string
	Active  bool
	// Rates は役割名から時給へのマッピングです。
	Rates      map[string]float64
	Facilities []string
	IsDefault  bool
}

// Rate は役割の時給を返します。未登録の役割は 0 です。
func (c Company) Rate(role string) float64 {
	if c.Rates == nil {
		return 0
	}
	return c.Rates[role]
}

// RoleNames は役割名を昇順で返します。
func (c Company) RoleNames() []string {
	names := make([]string, 0, len(c.Rates))
	for name := range c.Rates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cloneCompany(c Company) Company {
	out := c
	if c.Rates != nil {
		out.Rates = make(map[string]float64, len(c.Rates))
		for role, rate := range c.Rates {
			out.Rates[role] = rate
		}
	}
	if c.Facilities != nil {
		out.Facilities = append([]string(nil), c.Facilities...)
	}
	return out
}
