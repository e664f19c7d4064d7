package company

import (
	"sort"
	"strings"
)

// Directory は会社 ID から会社情報を引く読み取り専用の索引です。
type Directory struct {
	order []string
	byID  map[string]Company
}

// NewDirectory は会社一覧から Directory を構築します。ID が重複した場合は先勝ちです。
func NewDirectory(companies []Company) *Directory {
	d := &Directory{byID: make(map[string]Company, len(companies))}
	for _, c := range companies {
		if _, exists := d.byID[c.ID]; exists {
			continue
		}
		d.byID[c.ID] = cloneCompany(c)
		d.order = append(d.order, c.ID)
	}
	return d
}

// Lookup は ID に対応する会社を返します。
func (d *Directory) Lookup(companyID string) (Company, bool) {
	if d == nil {
		return Company{}, false
	}
	c, ok := d.byID[companyID]
	if !ok {
		return Company{}, false
	}
	return cloneCompany(c), true
}

// RateFor は会社と役割に対応する時給を返します。どちらかが無ければ 0 です。
func (d *Directory) RateFor(companyID, role string) float64 {
	if d == nil {
		return 0
	}
	c, ok := d.byID[companyID]
	if !ok {
		return 0
	}
	return c.Rate(role)
}

// NameFor は会社名を返します。解決できない場合は UnknownCompanyName です。
func (d *Directory) NameFor(companyID string) string {
	if d == nil {
		return UnknownCompanyName
	}
	c, ok := d.byID[companyID]
	if !ok || strings.TrimSpace(c.Name) == "" {
		return UnknownCompanyName
	}
	return c.Name
}

// All は登録順の会社一覧を返します。
func (d *Directory) All() []Company {
	if d == nil {
		return nil
	}
	out := make([]Company, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, cloneCompany(d.byID[id]))
	}
	return out
}

// Active は有効な会社のみを登録順で返します。
func (d *Directory) Active() []Company {
	var out []Company
	for _, c := range d.All() {
		if c.Active {
			out = append(out, c)
		}
	}
	return out
}

// Roles は有効な会社の役割名の和集合を昇順で返します。
func (d *Directory) Roles() []string {
	seen := make(map[string]struct{})
	for _, c := range d.Active() {
		for role := range c.Rates {
			seen[role] = struct{}{}
		}
	}
	roles := make([]string, 0, len(seen))
	for role := range seen {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
