// Package forms implements the multi-step validation engine for
// portfolio-company investment records. Input arrives as the loosely
// typed field map an HTML form produces; output is either a normalized
// Record or a per-field error map. Validation never panics outward and
// has no side effects, so it is safe to call concurrently.
package forms

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Step selects which page of the company intake wizard to validate.
type Step int

const (
	// StepCompanyProfile covers the public-facing company fields.
	StepCompanyProfile Step = 0
	// StepInvestmentTerms covers the deal terms and founder contact.
	StepInvestmentTerms Step = 1
)

// ErrValidatorFault is returned when validation itself fails for a
// reason unrelated to the input (a bug, not a bad form). Callers must
// surface it as a generic failure rather than a field error.
var ErrValidatorFault = fmt.Errorf("forms: validator fault")

// companyProfileStep carries the structural rules for step 0.
type companyProfileStep struct {
	Name              string `json:"name" validate:"required,max=255"`
	Slug              string `json:"slug" validate:"required,max=100,slug"`
	Tagline           string `json:"tagline" validate:"required,max=500"`
	DescriptionRaw    string `json:"description_raw" validate:"required,max=5000"`
	WebsiteURL        string `json:"website_url" validate:"required,url"`
	CountryOfIncorp   string `json:"country_of_incorp" validate:"required,country_code"`
	IncorporationType string `json:"incorporation_type" validate:"required,oneof=c_corp s_corp llc bcorp gmbh ltd plc other"`
}

// investmentTermsStep carries the structural rules for step 1. The
// conditional terms are pointers: nil is absent, and the instrument
// branch decides later whether absence is an error.
type investmentTermsStep struct {
	InvestmentDate     string   `json:"investment_date" validate:"required,datetime=2006-01-02"`
	InvestmentAmount   *float64 `json:"investment_amount" validate:"required,gt=0"`
	Instrument         string   `json:"instrument" validate:"required,oneof=safe_post safe_pre convertible_note equity"`
	StageAtInvestment  string   `json:"stage_at_investment" validate:"required,oneof=pre_seed seed series_a series_b series_c"`
	RoundSizeUSD       *float64 `json:"round_size_usd" validate:"required,gt=0"`
	Fund               string   `json:"fund" validate:"required,oneof=fund_i fund_ii fund_iii"`
	ReasonForInvesting string   `json:"reason_for_investing" validate:"required,max=4000"`
	ConversionCapUSD   *float64 `json:"conversion_cap_usd" validate:"omitempty,gt=0"`
	DiscountPercent    *float64 `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	PostMoneyValuation *float64 `json:"post_money_valuation" validate:"omitempty,gt=0"`
	HasProRataRights   bool     `json:"has_pro_rata_rights"`
	FounderEmail       string   `json:"founder_email" validate:"required,email"`
	Status             string   `json:"status" validate:"required,oneof=active acquihired exited dead"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	registerCustom(v)
	// Report errors under the form field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a complete investment record: both wizard steps plus
// the instrument-conditional rules. On success the returned Record is
// fully populated and errs is nil. On validation failure errs maps each
// failing field to its ordered messages. A non-nil err means validation
// itself faulted and no verdict exists.
func Validate(input map[string]any) (rec *Record, errs Errors, err error) {
	return run(input, []Step{StepCompanyProfile, StepInvestmentTerms})
}

// ValidateStep checks only the fields collected on one wizard page.
// Fields belonging to the other step are ignored entirely, so a step-0
// payload never needs founder details and vice versa.
func ValidateStep(step Step, input map[string]any) (rec *Record, errs Errors, err error) {
	if step != StepCompanyProfile && step != StepInvestmentTerms {
		return nil, nil, fmt.Errorf("%w: unknown step %d", ErrValidatorFault, step)
	}
	return run(input, []Step{step})
}

func run(input map[string]any, steps []Step) (rec *Record, errs Errors, err error) {
	// A fault inside validation must not take the caller down; it is
	// reported as a distinct error, never as a field-error map.
	defer func() {
		if r := recover(); r != nil {
			rec, errs = nil, nil
			err = fmt.Errorf("%w: %v", ErrValidatorFault, r)
		}
	}()

	cleaned := normalize(input, steps)
	errs = Errors{}
	rec = &Record{}

	var ( // step payloads, decoded from the cleaned map
		profile companyProfileStep
		terms   investmentTermsStep
	)

	withTerms := false
	for _, step := range steps {
		switch step {
		case StepCompanyProfile:
			decodeProfile(cleaned, &profile, errs)
		case StepInvestmentTerms:
			withTerms = true
			decodeTerms(cleaned, &terms, errs)
		}
	}
	decodeFailed := make(map[string]bool, len(errs))
	for f := range errs {
		decodeFailed[f] = true
	}

	for _, step := range steps {
		var target any
		switch step {
		case StepCompanyProfile:
			target = profile
		case StepInvestmentTerms:
			target = terms
		}
		if vErr := validate.Struct(target); vErr != nil {
			vErrs, ok := vErr.(validator.ValidationErrors)
			if !ok {
				return nil, nil, fmt.Errorf("%w: %v", ErrValidatorFault, vErr)
			}
			for _, fe := range vErrs {
				if decodeFailed[fe.Field()] {
					// The type error already explains the problem.
					continue
				}
				errs.Add(fe.Field(), messageFor(fe))
			}
		}
	}

	// Cross-field rules run only on structurally clean input.
	if withTerms && errs.Empty() {
		checkInstrumentTerms(&terms, errs)
	}

	if !errs.Empty() {
		return nil, errs, nil
	}

	fillRecord(rec, &profile, &terms, steps)
	return rec, nil, nil
}

// checkInstrumentTerms enforces that the instrument determines exactly
// which term fields are mandatory. Errors attach to the dependent field,
// not to instrument.
func checkInstrumentTerms(terms *investmentTermsStep, errs Errors) {
	switch terms.Instrument {
	case "safe_post", "safe_pre", "convertible_note":
		if terms.ConversionCapUSD == nil {
			errs.Add("conversion_cap_usd", "is required for SAFE and convertible note investments")
		}
		// Present-and-zero is a real discount; only absence is an error.
		if terms.DiscountPercent == nil {
			errs.Add("discount_percent", "is required for SAFE and convertible note investments")
		}
	case "equity":
		if terms.PostMoneyValuation == nil {
			errs.Add("post_money_valuation", "is required for priced equity investments")
		}
	}
}

func fillRecord(rec *Record, profile *companyProfileStep, terms *investmentTermsStep, steps []Step) {
	for _, step := range steps {
		switch step {
		case StepCompanyProfile:
			rec.Name = profile.Name
			rec.Slug = profile.Slug
			rec.Tagline = profile.Tagline
			rec.DescriptionRaw = profile.DescriptionRaw
			rec.WebsiteURL = profile.WebsiteURL
			rec.CountryOfIncorp = profile.CountryOfIncorp
			rec.IncorporationType = profile.IncorporationType
		case StepInvestmentTerms:
			rec.InvestmentDate = terms.InvestmentDate
			rec.InvestmentAmount = *terms.InvestmentAmount
			rec.Instrument = terms.Instrument
			rec.StageAtInvestment = terms.StageAtInvestment
			rec.RoundSizeUSD = *terms.RoundSizeUSD
			rec.Fund = terms.Fund
			rec.ReasonForInvesting = terms.ReasonForInvesting
			rec.ConversionCapUSD = terms.ConversionCapUSD
			rec.DiscountPercent = terms.DiscountPercent
			rec.PostMoneyValuation = terms.PostMoneyValuation
			rec.HasProRataRights = terms.HasProRataRights
			rec.FounderEmail = terms.FounderEmail
			rec.Status = terms.Status
		}
	}
}

// messageFor turns a validator tag failure into the human-readable
// message shown next to the form control.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "gt":
		return "must be a positive number"
	case "gte", "lte":
		return "must be between 0 and 100"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "slug":
		return "must contain only lowercase letters, numbers, and hyphens"
	case "country_code":
		return "must be a 2-letter ISO country code"
	default:
		return "is invalid"
	}
}
