package bulksheet

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// fold normaliza o texto para as comparações por substring.
// NFKC converte caracteres de largura total (ＡＳＩＮ, ｅｘａｃｔ) antes do lower-case.
func fold(s string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(s)))
}

func isDelimiter(r rune) bool {
	return r == '/' || r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
}

// fragments divide o texto nos delimitadores e descarta fragmentos de um caractere
func fragments(s string) []string {
	parts := strings.FieldsFunc(s, isDelimiter)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if utf8.RuneCountInString(part) > 1 {
			out = append(out, part)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// dedupe remove repetições preservando a primeira ocorrência
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func foldAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fold(v))
	}
	return out
}
