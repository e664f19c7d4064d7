package company

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type storedRole struct {
	HourlyRate json.RawMessage `json:"hourly_rate"`
}

// ParseRates は保存形式 {"役割": {"hourly_rate": 数値または文字列}} の時給表を解釈します。
// 解釈できない時給は 0 になります。
func ParseRates(raw []byte) (map[string]float64, error) {
	rates := make(map[string]float64)

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return rates, nil
	}

	var roles map[string]storedRole
	if err := json.Unmarshal(trimmed, &roles); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRates, err)
	}

	for role, entry := range roles {
		rates[role] = ParseRate(string(entry.HourlyRate))
	}

	return rates, nil
}

// ParseRate は時給の値を数値へ変換します。JSON 文字列のクォートは取り除きます。
func ParseRate(raw string) float64 {
	value := strings.TrimSpace(raw)
	if unquoted, err := strconv.Unquote(value); err == nil {
		value = strings.TrimSpace(unquoted)
	}
	value = strings.Replace(value, ",", ".", 1)

	rate, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return sanitizeRate(rate)
}

func sanitizeRate(rate float64) float64 {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return 0
	}
	return rate
}
