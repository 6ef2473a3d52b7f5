package utils

import (
	"strings"
	"unicode"
)

// ContainsFold informa se needle aparece em haystack ignorando maiúsculas/minúsculas.
// Um needle vazio sempre casa.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// NormalizeEmail remove espaços e coloca o email em minúsculas
func NormalizeEmail(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// StringPtr retorna nil para strings vazias
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
