package forms

import (
	"strconv"
	"strings"
)

// numericFields are coerced from non-empty strings to float64 before
// any rule runs, since form controls submit everything as strings.
// Unparseable strings are left untouched for the type rule to reject.
var numericFields = map[string]bool{
	"investment_amount":    true,
	"round_size_usd":       true,
	"conversion_cap_usd":   true,
	"discount_percent":     true,
	"post_money_valuation": true,
}

// requiredFields is the set of unconditionally required field names for
// each step. Conditionally required terms (cap/discount/post-money) and
// defaulted fields are deliberately not listed: an empty string there
// means "absent", not "invalid".
var requiredFields = map[Step]map[string]bool{
	StepCompanyProfile: {
		"name":              true,
		"slug":              true,
		"tagline":           true,
		"description_raw":   true,
		"website_url":       true,
		"country_of_incorp": true,
		"incorporation_type": true,
	},
	StepInvestmentTerms: {
		"investment_date":      true,
		"investment_amount":    true,
		"instrument":           true,
		"stage_at_investment":  true,
		"round_size_usd":       true,
		"fund":                 true,
		"reason_for_investing": true,
		"founder_email":        true,
		"status":               true,
	},
}

// fieldDefaults are applied when the field is absent or submitted as an
// empty string (an untouched select control).
var fieldDefaults = map[string]string{
	"instrument": "safe_post",
	"fund":       "fund_i",
	"status":     "active",
}

// normalize builds a cleaned copy of the raw input for the given steps.
// The caller's map is never mutated, so repeated validation of the same
// input is byte-identical.
func normalize(input map[string]any, steps []Step) map[string]any {
	required := map[string]bool{}
	for _, s := range steps {
		for f := range requiredFields[s] {
			required[f] = true
		}
	}

	out := make(map[string]any, len(input))
	for k, v := range input {
		out[k] = v
	}

	// Numeric coercion: non-empty strings become float64 where possible.
	for field := range numericFields {
		s, ok := out[field].(string)
		if !ok || s == "" {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			out[field] = f
		}
	}

	// Optional-field emptiness means absent, so an empty cap input does
	// not trip the "must be a number" rule.
	for k, v := range out {
		if required[k] {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			delete(out, k)
		}
	}

	// Defaults for untouched selects.
	for field, def := range fieldDefaults {
		if v, ok := out[field]; !ok || v == "" {
			out[field] = def
		}
	}

	// Country codes are stored uppercase.
	if s, ok := out["country_of_incorp"].(string); ok {
		out["country_of_incorp"] = strings.ToUpper(strings.TrimSpace(s))
	}

	// Checkbox values arrive as the string "true" when ticked.
	if s, ok := out["has_pro_rata_rights"].(string); ok {
		out["has_pro_rata_rights"] = s == "true"
	}

	// New records are always created active, whatever the client sent.
	if id, ok := out["id"].(string); !ok || id == "" {
		out["status"] = "active"
	}

	return out
}
