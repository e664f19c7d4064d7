package company

// Override は組み込み会社に対する利用者の上書き設定です。nil のフィールドは既定値を使います。
type Override struct {
	Active     *bool
	Rates      map[string]float64
	Facilities []string
}

// DefaultConfig は組み込み会社の既定値を返します。
func DefaultConfig() Company {
	return Company{
		ID:     DefaultCompanyID,
		Name:   "Milanosport",
		Active: true,
		Rates: map[string]float64{
			"AB":          10.67,
			"Accoglienza": 10.67,
			"Istruttore":  12.00,
			"Reception":   10.67,
		},
		Facilities: []string{
			"Piscina Argelati",
			"Piscina Bacone",
			"Piscina Cambini Fossati",
			"Piscina Cardellino",
			"Piscina Carella - Cantù",
			"Piscina Cozzi",
			"Piscina De Marchi",
			"Piscina Iseo",
			"Piscina Mincio",
			"Piscina Murat",
			"Piscina Parri Menegoni",
			"Piscina Procida",
			"Piscina Quarto Cagnino",
			"Piscina Romano",
			"Piscina Sant Abbondio",
			"Piscina Solari",
			"Piscina Suzzani",
		},
		IsDefault: true,
	}
}

// ResolveConfig は上書き設定を組み込み会社へ適用した結果を返します。
// 時給表と施設一覧はそれぞれ丸ごと置き換えられ、部分的なマージは行いません。
func ResolveConfig(override *Override, builtin Company) Company {
	resolved := cloneCompany(builtin)
	resolved.ID = DefaultCompanyID
	resolved.OwnerID = ""
	resolved.IsDefault = true

	if override == nil {
		return resolved
	}

	if override.Active != nil {
		resolved.Active = *override.Active
	}

	if len(override.Rates) > 0 {
		rates := make(map[string]float64, len(override.Rates))
		for role, rate := range override.Rates {
			rates[role] = sanitizeRate(rate)
		}
		resolved.Rates = rates
	}

	if len(override.Facilities) > 0 {
		resolved.Facilities = append([]string(nil), override.Facilities...)
	}

	return resolved
}
