// Package label turns raw prefix/suffix fragments into checkable,
// ASCII-compatible domain names.
package label

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// DNS limits a single label to 63 octets.
const maxLabelLength = 63

var (
	ErrEmptyLabel   = errors.New("label is empty after filtering")
	ErrLabelTooLong = errors.New("label exceeds 63 characters")
	ErrHyphenEdge   = errors.New("label starts or ends with a hyphen")
	ErrNoTLD        = errors.New("tld is required")
)

// Normalize builds "<prefix><suffix>.<tld>" as a validated, lowercase,
// ASCII-compatible-encoded domain name. Characters outside [a-z0-9-] are
// dropped from the label after lowercasing. Pure function, no I/O.
func Normalize(prefix, suffix, tld string) (string, error) {
	raw := strings.ToLower(strings.TrimSpace(prefix + suffix))

	var b strings.Builder
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	lbl := b.String()

	switch {
	case lbl == "":
		return "", ErrEmptyLabel
	case len(lbl) > maxLabelLength:
		return "", ErrLabelTooLong
	case strings.HasPrefix(lbl, "-") || strings.HasSuffix(lbl, "-"):
		return "", ErrHyphenEdge
	}

	zone := normalizeTLD(tld)
	if zone == "" {
		return "", ErrNoTLD
	}

	ascii, err := idna.ToASCII(lbl + "." + zone)
	if err != nil {
		return "", fmt.Errorf("idna encode: %w", err)
	}
	return ascii, nil
}

// Display reconstructs a best-effort domain string for candidates that
// failed normalization, for use in reports.
func Display(prefix, suffix, tld string) string {
	return prefix + suffix + "." + normalizeTLD(tld)
}

func normalizeTLD(tld string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tld)), ".")
}
