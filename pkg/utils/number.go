package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber interpreta valores numéricos vindos da planilha ("0.5", " 12 ", "20%").
// O sinal de porcentagem é descartado.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
