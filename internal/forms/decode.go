package forms

import "encoding/json"

// decodeProfile pulls step-0 fields out of the cleaned map. Type
// mismatches become field errors; missing keys decode to zero values
// and are left for the required rule.
func decodeProfile(m map[string]any, dst *companyProfileStep, errs Errors) {
	dst.Name = stringField(m, "name", errs)
	dst.Slug = stringField(m, "slug", errs)
	dst.Tagline = stringField(m, "tagline", errs)
	dst.DescriptionRaw = stringField(m, "description_raw", errs)
	dst.WebsiteURL = stringField(m, "website_url", errs)
	dst.CountryOfIncorp = stringField(m, "country_of_incorp", errs)
	dst.IncorporationType = stringField(m, "incorporation_type", errs)
}

// decodeTerms pulls step-1 fields out of the cleaned map.
func decodeTerms(m map[string]any, dst *investmentTermsStep, errs Errors) {
	dst.InvestmentDate = stringField(m, "investment_date", errs)
	dst.InvestmentAmount = numberField(m, "investment_amount", errs)
	dst.Instrument = stringField(m, "instrument", errs)
	dst.StageAtInvestment = stringField(m, "stage_at_investment", errs)
	dst.RoundSizeUSD = numberField(m, "round_size_usd", errs)
	dst.Fund = stringField(m, "fund", errs)
	dst.ReasonForInvesting = stringField(m, "reason_for_investing", errs)
	dst.ConversionCapUSD = numberField(m, "conversion_cap_usd", errs)
	dst.DiscountPercent = numberField(m, "discount_percent", errs)
	dst.PostMoneyValuation = numberField(m, "post_money_valuation", errs)
	dst.HasProRataRights = boolField(m, "has_pro_rata_rights", errs)
	dst.FounderEmail = stringField(m, "founder_email", errs)
	dst.Status = stringField(m, "status", errs)
}

func stringField(m map[string]any, field string, errs Errors) string {
	v, ok := m[field]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		errs.Add(field, "must be text")
		return ""
	}
	return s
}

// numberField accepts the numeric shapes JSON decoding and the
// coercion pass can produce. A string here survived coercion, meaning
// it was not parseable.
func numberField(m map[string]any, field string, errs Errors) *float64 {
	v, ok := m[field]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return &f
		}
	}
	errs.Add(field, "must be a number")
	return nil
}

func boolField(m map[string]any, field string, errs Errors) bool {
	v, ok := m[field]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		errs.Add(field, "must be true or false")
		return false
	}
	return b
}
