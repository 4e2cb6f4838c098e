/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NormalizeName converts a rating-service style name such as "BEHR, RUFUS"
// or "rufus  behr" into "Rufus Behr".
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if last, first, ok := strings.Cut(name, ","); ok {
		name = strings.TrimSpace(first) + " " + strings.TrimSpace(last)
	}

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// capitalize upper-cases the first letter of w and of every part following
// a hyphen or apostrophe, lower-casing the rest.
func capitalize(w string) string {
	runes := []rune(strings.ToLower(w))
	upper := true
	for i, r := range runes {
		if upper && unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			upper = false
		}
		if r == '-' || r == '\'' {
			upper = true
		}
	}
	return string(runes)
}

// ScoreToString formats a half-point score, e.g. 2 -> "2", 2.5 -> "2½".
func ScoreToString(score float64) string {
	whole := math.Floor(score)
	if score-whole >= 0.5 {
		if whole == 0 {
			return "½"
		}
		return fmt.Sprintf("%v½", whole)
	}
	return fmt.Sprintf("%v", whole)
}
