// Package extraction turns the raw label -> text pairs produced by the
// expense OCR into monetary totals. Two historically divergent policies
// exist and both are kept as separately named strategies; their results
// differ on ambiguous inputs, so callers must pick one deliberately.
package extraction

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// totalPhrases is the priority order for SubstringPriorityMatch. The
// order matters: the first phrase that matches any key wins.
var totalPhrases = []string{
	"Total to Pay",
	"TOTAL",
	"=TOTAL:",
	"Total",
	"VISA",
	"Net Subtotal",
	"SUBTOTAL",
}

// exactTotalKeys is the match set for ExactKeyAfterStrip.
var exactTotalKeys = map[string]struct{}{
	"TOTAL":      {},
	"AMOUNT":     {},
	"GRANDTOTAL": {},
	"TOTALTOPAY": {},
}

// keyStripChars are removed from labels before the exact-match lookup.
var keyStripChars = []string{"=", ":", "-", "$", ".", ",", " "}

// SubstringPriorityMatch returns the best-guess total of one receipt.
// Phrases are tried in priority order with case- and space-insensitive
// substring matching against every key; the first phrase that matches
// any key wins. When several keys match the winning phrase, map
// iteration order decides, so duplicate labels make the result
// non-deterministic. If the chosen value does not parse as a number the
// result is 0.0; no further phrases are tried.
func SubstringPriorityMatch(fields map[string]string) float64 {
	for _, phrase := range totalPhrases {
		needle := strings.ReplaceAll(strings.ToLower(phrase), " ", "")
		for key, value := range fields {
			haystack := strings.ReplaceAll(strings.ToLower(key), " ", "")
			if !strings.Contains(haystack, needle) {
				continue
			}
			cleaned := strings.NewReplacer("RM", "", "$", "", ":", "", " ", "").Replace(value)
			parsed, err := strconv.ParseFloat(cleaned, 64)
			if err != nil {
				return 0.0
			}
			return parsed
		}
	}
	return 0.0
}

// ExactKeyAfterStrip is the aggregator's policy: upper-case each label,
// strip "=", ":", "-", "$", ".", ",", and spaces, then require equality
// with one of TOTAL, AMOUNT, GRANDTOTAL, TOTALTOPAY. The last matching
// key in iteration order wins (overwrite semantics). The raw, uncleaned
// value is returned; callers clean and parse it themselves.
func ExactKeyAfterStrip(fields map[string]string) (string, bool) {
	var value string
	found := false
	for key, raw := range fields {
		cleaned := strings.ToUpper(key)
		for _, c := range keyStripChars {
			cleaned = strings.ReplaceAll(cleaned, c, "")
		}
		cleaned = strings.TrimSpace(cleaned)
		if _, ok := exactTotalKeys[cleaned]; ok {
			value = raw
			found = true
		}
	}
	return value, found
}

// CleanClaimValue strips the currency noise the aggregator tolerates in
// matched values: commas, dollar signs and surrounding whitespace.
func CleanClaimValue(value string) string {
	cleaned := strings.ReplaceAll(value, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	return strings.TrimSpace(cleaned)
}

// ParseClaim parses a cleaned claim value into a decimal. Monetary
// totals are accumulated in decimals, never floats.
func ParseClaim(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(CleanClaimValue(value))
}
