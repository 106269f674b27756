package forms

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	slugRegex    = regexp.MustCompile(`^[a-z0-9-]+$`)
	countryRegex = regexp.MustCompile(`^[A-Z]{2}$`)
)

// Register installs the form validators on Gin's binding engine so
// request DTOs can use the same tags the forms engine uses.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustom(v)
	}
}

func registerCustom(v *validator.Validate) {
	_ = v.RegisterValidation("slug", validateSlug)
	_ = v.RegisterValidation("country_code", validateCountryCode)
	_ = v.RegisterValidation("company_status", validateCompanyStatus)
	_ = v.RegisterValidation("fund_name", validateFund)
	_ = v.RegisterValidation("stage", validateStage)
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

func validateCountryCode(fl validator.FieldLevel) bool {
	return countryRegex.MatchString(fl.Field().String())
}

func validateCompanyStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "acquihired", "exited", "dead":
		return true
	}
	return false
}

func validateFund(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fund_i", "fund_ii", "fund_iii":
		return true
	}
	return false
}

func validateStage(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pre_seed", "seed", "series_a", "series_b", "series_c":
		return true
	}
	return false
}
