// Package passwords derives ranked decryption guesses for password-protected
// statements from a customer's known identifiers. Banks overwhelmingly set
// statement passwords to combinations of birth date, phone digits and name,
// so the rules below enumerate those conventions from most to least common.
package passwords

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nbakri/kashf/extractor/common"
)

var yearRegex = regexp.MustCompile(`(19|20)\d{2}`)

// Date-of-birth templates tried in order before falling back to a raw year
// search. Covers dashed, slashed and concatenated renderings in year-first,
// day-first and month-first orders.
var dobLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01-02-2006",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
	"20060102",
	"02012006",
}

// birthYear resolves a 4-digit birth year out of a free-form date-of-birth
// string. Returns false when nothing plausible can be found.
func birthYear(dob string) (int, bool) {
	trimmed := strings.TrimSpace(dob)
	if trimmed == "" {
		return 0, false
	}
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Year(), true
		}
	}
	if match := yearRegex.FindString(trimmed); match != "" {
		year, _ := strconv.Atoi(match)
		return year, true
	}
	digits := common.Digits(trimmed)
	if len(digits) >= 4 {
		for _, part := range []string{digits[:4], digits[len(digits)-4:]} {
			if year, err := strconv.Atoi(part); err == nil && year >= 1900 && year <= 2100 {
				return year, true
			}
		}
	}
	return 0, false
}

// Candidates produces the ordered list of distinct password guesses for a
// profile. Output is deterministic for identical input; earlier entries are
// higher priority. Malformed or missing profile attributes silently disable
// the rules that need them, the remaining rules still contribute.
func Candidates(profile common.CustomerProfile) []string {
	phone := common.Digits(profile.PhoneNumber)
	dobDigits := common.Digits(profile.DateOfBirth)
	tokens := nameTokens(profile.NameParts)
	phoneSuffixes := suffixes(phone, 4, 6, 8)
	year, hasYear := birthYear(profile.DateOfBirth)

	var out []string

	// Birth year combined with phone suffixes ranks first.
	if hasYear {
		full := strconv.Itoa(year)
		for _, y := range []string{full, full[2:]} {
			for _, suffix := range phoneSuffixes {
				out = append(out, y+suffix)
			}
		}
	}

	// Name crossed with date-of-birth renderings.
	renderings := dobRenderings(dobDigits)
	for _, tok := range tokens {
		for _, r := range renderings {
			out = append(out, tok+r, capitalize(tok)+r, r+tok)
		}
	}

	// Name crossed with the last four phone digits.
	if len(phone) >= 4 {
		last4 := phone[len(phone)-4:]
		for _, tok := range tokens {
			out = append(out, tok+last4, capitalize(tok)+last4, last4+tok)
		}
	}

	// Card last-four plus the day-month pair of an 8-digit
	// year-month-day date of birth.
	if len(dobDigits) >= 8 {
		ddmm := dobDigits[6:8] + dobDigits[4:6]
		for _, card := range profile.CardLastFours {
			if card = strings.TrimSpace(card); card != "" {
				out = append(out, card+ddmm)
			}
		}
	}

	// Bare identifiers rank last.
	for _, tok := range tokens {
		out = append(out, tok, capitalize(tok), strings.ToUpper(tok))
	}
	out = append(out, phone)
	out = append(out, phoneSuffixes...)
	out = append(out, renderings...)
	if hasYear {
		full := strconv.Itoa(year)
		out = append(out, full, full[2:])
	}

	return dedupe(out)
}

// dobRenderings returns the digit-only date of birth in original order,
// reversed, and truncated to its trailing 2 and 4 digits.
func dobRenderings(dobDigits string) []string {
	if dobDigits == "" {
		return nil
	}
	renderings := []string{dobDigits, reverse(dobDigits)}
	if len(dobDigits) >= 2 {
		renderings = append(renderings, dobDigits[len(dobDigits)-2:])
	}
	if len(dobDigits) >= 4 {
		renderings = append(renderings, dobDigits[len(dobDigits)-4:])
	}
	return renderings
}

func nameTokens(parts []string) []string {
	var tokens []string
	for _, part := range parts {
		for _, tok := range strings.Fields(part) {
			tokens = append(tokens, strings.ToLower(tok))
		}
	}
	return tokens
}

func suffixes(digits string, lengths ...int) []string {
	var out []string
	for _, n := range lengths {
		if len(digits) >= n {
			out = append(out, digits[len(digits)-n:])
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// dedupe collapses duplicates to their first occurrence, preserving rank,
// and drops empty or whitespace-only guesses.
func dedupe(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
