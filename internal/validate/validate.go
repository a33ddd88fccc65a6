package validate

import (
	"regexp"
	"strings"

	"tradebinder/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'\\-]{1,50}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (card/user/trade ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// Qty clamps a transfer quantity to a sane window.
func Qty(n int) (int, bool) {
	return n, n >= 1 && n <= 500
}

// Condition validates the condition enum.
func Condition(s string) (domain.Condition, bool) {
	c := domain.Condition(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case domain.CondMint, domain.CondNearMint, domain.CondLightlyPlayed,
		domain.CondModeratelyPlayed, domain.CondHeavilyPlayed, domain.CondDamaged:
		return c, true
	}
	return "", false
}

// Message caps trade messages; empty is fine.
func Message(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= 500
}
