package forms

// Record is a fully-typed, normalized investment record as produced by
// a successful validation pass. Conditional terms are pointers so that
// "absent" and "present with value zero" stay distinguishable; in
// particular a discount of 0 is a real, valid discount.
//
// Step-scoped validation fills only the fields belonging to that step.
type Record struct {
	// Company profile (step 0)
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Tagline           string `json:"tagline"`
	DescriptionRaw    string `json:"description_raw"`
	WebsiteURL        string `json:"website_url"`
	CountryOfIncorp   string `json:"country_of_incorp"`
	IncorporationType string `json:"incorporation_type"`

	// Investment terms (step 1)
	InvestmentDate     string   `json:"investment_date"` // YYYY-MM-DD
	InvestmentAmount   float64  `json:"investment_amount"`
	Instrument         string   `json:"instrument"`
	StageAtInvestment  string   `json:"stage_at_investment"`
	RoundSizeUSD       float64  `json:"round_size_usd"`
	Fund               string   `json:"fund"`
	ReasonForInvesting string   `json:"reason_for_investing"`
	ConversionCapUSD   *float64 `json:"conversion_cap_usd,omitempty"`
	DiscountPercent    *float64 `json:"discount_percent,omitempty"`
	PostMoneyValuation *float64 `json:"post_money_valuation,omitempty"`
	HasProRataRights   bool     `json:"has_pro_rata_rights"`
	FounderEmail       string   `json:"founder_email,omitempty"`
	Status             string   `json:"status"`
}
