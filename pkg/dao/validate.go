package dao

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// cssValidate checks CSS records. Custom rules know the NA sentinels.
var cssValidate *validator.Validate

func init() {
	cssValidate = validator.New()
	for tag, fn := range cssRules {
		if err := cssValidate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("cannot register validation %q: %v", tag, err))
		}
	}
}

// cssRules are the custom validation tags of CSS records.
var cssRules = map[string]validator.Func{
	"css_na_or_nonneg": validateNAOrNonNeg,
	"css_azimuth":      validateAzimuth,
	"css_mag":          validateMag,
	"css_cov":          validateCov,
	"css_defining":     validateDefining,
}

func validateNAOrNonNeg(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return IsNA(v, NA) || v >= 0
}

func validateAzimuth(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return IsNA(v, NA) || (v >= 0 && v <= 360)
}

func validateMag(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return IsNA(v, NAMag) || (v >= MagnitudeMin && v <= MagnitudeMax)
}

func validateCov(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return IsNA(v, NACov) || v >= 0
}

func validateDefining(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || DefiningFlag(s).IsValid()
}

// validate runs struct validation and wraps a failure for the table.
func validate(table string, r any) error {
	if err := cssValidate.Struct(r); err != nil {
		return ValidationError(table, err)
	}
	return nil
}

// Record is a validated row of a legacy table.
type Record interface {
	TableName() string
	Validate() error
}
