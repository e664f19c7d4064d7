package earnings

import (
	"sort"
	"strings"

	"github.com/ogurasousui/poolcalendar/internal/core/company"
	"github.com/ogurasousui/poolcalendar/internal/core/shift"
)

// UnknownCompanyKey は会社参照を持たないシフトの集計キーです。
const UnknownCompanyKey = "unknown"

// RateLookup は会社と役割から時給と会社を解決します。company.Directory が実装します。
type RateLookup interface {
	RateFor(companyID, role string) float64
	Lookup(companyID string) (company.Company, bool)
}

// Filter は集計対象を絞り込む等値条件です。空文字は条件なしを表します。
type Filter struct {
	Role      string
	CompanyID string
}

// Bucket は時間・金額・件数の集計値です。
type Bucket struct {
	Hours    float64 `json:"hours"`
	Earnings float64 `json:"earnings"`
	Count    int     `json:"count"`
}

func (b *Bucket) add(hours, earnings float64) {
	b.Hours += hours
	b.Earnings += earnings
	b.Count++
}

// RoleBucket は会社内の役割別集計で、適用した時給を保持します。
type RoleBucket struct {
	Bucket
	Rate float64 `json:"rate"`
}

// CompanyBucket は会社別集計です。
type CompanyBucket struct {
	Bucket
	Name   string                 `json:"name"`
	ByRole map[string]*RoleBucket `json:"by_role"`
}

// Summary は集計結果です。永続化はされません。
type Summary struct {
	Window        Window                    `json:"-"`
	TotalHours    float64                   `json:"total_hours"`
	TotalEarnings float64                   `json:"total_earnings"`
	ShiftCount    int                       `json:"shift_count"`
	ByRole        map[string]*Bucket        `json:"by_role"`
	ByCompany     map[string]*CompanyBucket `json:"by_company"`
}

// Matches はシフトが期間と絞り込み条件を満たすかを返します。
func (f Filter) Matches(s shift.Shift, w Window) bool {
	if !w.Contains(s.StartAt) {
		return false
	}
	if f.Role != "" && s.Role != f.Role {
		return false
	}
	if f.CompanyID != "" && s.CompanyID != f.CompanyID {
		return false
	}
	return true
}

// Summarize はシフトを入力順に 1 回走査して集計します。
// 会社・役割・時給が解決できない場合は 0 として扱い、エラーは返しません。
func Summarize(shifts []shift.Shift, lookup RateLookup, window Window, filter Filter) Summary {
	summary := Summary{
		Window:    window,
		ByRole:    make(map[string]*Bucket),
		ByCompany: make(map[string]*CompanyBucket),
	}

	for _, s := range shifts {
		if !filter.Matches(s, window) {
			continue
		}

		hours := s.EffectiveHours()
		rate := rateFor(lookup, s.CompanyID, s.Role)
		amount := hours * rate

		summary.TotalHours += hours
		summary.TotalEarnings += amount
		summary.ShiftCount++

		roleBucket, ok := summary.ByRole[s.Role]
		if !ok {
			roleBucket = &Bucket{}
			summary.ByRole[s.Role] = roleBucket
		}
		roleBucket.add(hours, amount)

		companyKey := s.CompanyID
		if !s.HasCompany() {
			companyKey = UnknownCompanyKey
		}
		companyBucket, ok := summary.ByCompany[companyKey]
		if !ok {
			companyBucket = &CompanyBucket{
				Name:   nameFor(lookup, s.CompanyID),
				ByRole: make(map[string]*RoleBucket),
			}
			summary.ByCompany[companyKey] = companyBucket
		}
		companyBucket.add(hours, amount)

		companyRole, ok := companyBucket.ByRole[s.Role]
		if !ok {
			companyRole = &RoleBucket{Rate: rate}
			companyBucket.ByRole[s.Role] = companyRole
		}
		companyRole.add(hours, amount)
	}

	return summary
}

func rateFor(lookup RateLookup, companyID, role string) float64 {
	if lookup == nil || companyID == "" {
		return 0
	}
	return lookup.RateFor(companyID, role)
}

func nameFor(lookup RateLookup, companyID string) string {
	if lookup == nil || companyID == "" {
		return company.UnknownSummaryName
	}
	c, ok := lookup.Lookup(companyID)
	if !ok || strings.TrimSpace(c.Name) == "" {
		return company.UnknownSummaryName
	}
	return c.Name
}

// RoleKeys は役割別集計のキーを昇順で返します。
func (s Summary) RoleKeys() []string {
	return sortedKeys(s.ByRole)
}

// CompanyKeys は会社別集計のキーを昇順で返します。
func (s Summary) CompanyKeys() []string {
	return sortedKeys(s.ByCompany)
}

// RoleKeys は会社内の役割キーを昇順で返します。
func (c CompanyBucket) RoleKeys() []string {
	return sortedKeys(c.ByRole)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
