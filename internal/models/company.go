package models

import "time"

// Instrument represents the legal form of an investment.
type Instrument string

const (
	InstrumentSafePost        Instrument = "safe_post"
	InstrumentSafePre         Instrument = "safe_pre"
	InstrumentConvertibleNote Instrument = "convertible_note"
	InstrumentEquity          Instrument = "equity"
)

// IsConvertible reports whether the instrument converts later under a
// cap and discount (SAFEs and convertible notes).
func (i Instrument) IsConvertible() bool {
	switch i {
	case InstrumentSafePost, InstrumentSafePre, InstrumentConvertibleNote:
		return true
	}
	return false
}

// Stage represents the funding stage at the time of investment.
type Stage string

const (
	StagePreSeed Stage = "pre_seed"
	StageSeed    Stage = "seed"
	StageSeriesA Stage = "series_a"
	StageSeriesB Stage = "series_b"
	StageSeriesC Stage = "series_c"
)

// Fund identifies which fund made the investment.
type Fund string

const (
	FundI   Fund = "fund_i"
	FundII  Fund = "fund_ii"
	FundIII Fund = "fund_iii"
)

// IncorporationType represents the company's legal entity type.
type IncorporationType string

const (
	IncorpCCorp IncorporationType = "c_corp"
	IncorpSCorp IncorporationType = "s_corp"
	IncorpLLC   IncorporationType = "llc"
	IncorpBCorp IncorporationType = "bcorp"
	IncorpGmbH  IncorporationType = "gmbh"
	IncorpLtd   IncorporationType = "ltd"
	IncorpPLC   IncorporationType = "plc"
	IncorpOther IncorporationType = "other"
)

// CompanyStatus represents a portfolio company's current state.
type CompanyStatus string

const (
	CompanyActive     CompanyStatus = "active"
	CompanyAcquihired CompanyStatus = "acquihired"
	CompanyExited     CompanyStatus = "exited"
	CompanyDead       CompanyStatus = "dead"
)

// Company is a portfolio company together with the terms of our
// investment in it. Conversion cap and discount are set only for
// SAFE/note deals; post-money valuation only for priced equity.
type Company struct {
	Base
	Name               string            `gorm:"not null;size:255" json:"name"`
	Slug               string            `gorm:"uniqueIndex;not null;size:100" json:"slug"`
	Tagline            string            `gorm:"not null;size:500" json:"tagline"`
	DescriptionRaw     string            `gorm:"not null;size:5000" json:"description_raw"`
	WebsiteURL         string            `gorm:"not null" json:"website_url"`
	LogoURL            string            `json:"logo_url,omitempty"`
	InvestmentDate     time.Time         `gorm:"not null" json:"investment_date"`
	InvestmentAmount   float64           `gorm:"not null" json:"investment_amount"`
	Instrument         Instrument        `gorm:"not null;default:'safe_post'" json:"instrument"`
	StageAtInvestment  Stage             `gorm:"not null" json:"stage_at_investment"`
	RoundSizeUSD       float64           `gorm:"not null" json:"round_size_usd"`
	Fund               Fund              `gorm:"not null;default:'fund_i'" json:"fund"`
	ReasonForInvesting string            `gorm:"not null;size:4000" json:"reason_for_investing"`
	CountryOfIncorp    string            `gorm:"not null;size:2" json:"country_of_incorp"`
	IncorporationType  IncorporationType `gorm:"not null" json:"incorporation_type"`
	ConversionCapUSD   *float64          `json:"conversion_cap_usd,omitempty"`
	DiscountPercent    *float64          `json:"discount_percent,omitempty"`
	PostMoneyValuation *float64          `json:"post_money_valuation,omitempty"`
	HasProRataRights   bool              `gorm:"default:false" json:"has_pro_rata_rights"`
	FounderEmail       string            `json:"founder_email,omitempty"`
	Status             CompanyStatus     `gorm:"not null;default:'active'" json:"status"`

	// Relationships
	Founders []Founder `gorm:"foreignKey:CompanyID" json:"founders,omitempty"`
}
