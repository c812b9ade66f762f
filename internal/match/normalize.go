package match

import (
	"strconv"
	"strings"
)

var familySynonyms = map[string]string{
	"alkali metal":          "alkali metal",
	"alkali metals":         "alkali metal",
	"alkali":                "alkali metal",
	"alkaline earth metal":  "alkaline earth metal",
	"alkaline earth metals": "alkaline earth metal",
	"alkaline earth":        "alkaline earth metal",
	"alkaline earths":       "alkaline earth metal",
	"noble gas":             "noble gas",
	"noble gases":           "noble gas",
	"halogen":               "halogen",
	"halogens":              "halogen",
	"chalcogen":             "chalcogen",
	"chalcogens":            "chalcogen",
}

// NormalizeFamily canonicalizes a free-text family name.
//
// Known plural and singular spellings map through a fixed table. Anything else
// loses a trailing "es" or "s", which is a naive heuristic: irregular names
// outside the table are not guaranteed to come out right.
func NormalizeFamily(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if canonical, ok := familySynonyms[s]; ok {
		return canonical
	}
	switch {
	case strings.HasSuffix(s, "es"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "s"):
		return s[:len(s)-1]
	}
	return s
}

// NormalizeCharge canonicalizes an ionic charge answer.
//
// "2+", "+2" and "2" all become "+2"; "1-" and "-1" become "-1". Text that is
// not a charge is returned trimmed.
func NormalizeCharge(text string) string {
	s := strings.ReplaceAll(strings.TrimSpace(text), " ", "")
	s = strings.ReplaceAll(s, "−", "-")
	if s == "" {
		return s
	}
	sign := ""
	switch {
	case strings.HasSuffix(s, "+"), strings.HasSuffix(s, "-"):
		sign = s[len(s)-1:]
		s = s[:len(s)-1]
	case strings.HasPrefix(s, "+"), strings.HasPrefix(s, "-"):
		sign = s[:1]
		s = s[1:]
	}
	if s == "" {
		// A bare sign means a charge of one.
		s = "1"
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return strings.TrimSpace(text)
	}
	return FormatCharge(n, sign == "-")
}

// FormatCharge renders a charge magnitude with an explicit sign.
func FormatCharge(magnitude int, negative bool) string {
	if magnitude == 0 {
		return "0"
	}
	if negative {
		return "-" + strconv.Itoa(magnitude)
	}
	return "+" + strconv.Itoa(magnitude)
}

// ChargeString renders a signed charge.
func ChargeString(charge int) string {
	if charge < 0 {
		return FormatCharge(-charge, true)
	}
	return FormatCharge(charge, false)
}
