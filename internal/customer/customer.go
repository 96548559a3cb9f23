// Package customer models the quote recipient and the saved-customer
// directory operators pick from.
package customer

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/rhpisos/quoting-api/internal/common"
)

// TaxCategory is the customer's standing with the tax authority.
type TaxCategory string

// Supported tax categories.
const (
	RegisteredResponsible TaxCategory = "RegisteredResponsible"
	SmallTaxpayer         TaxCategory = "SmallTaxpayer"
	Exempt                TaxCategory = "Exempt"
	FinalConsumer         TaxCategory = "FinalConsumer"
)

// Customer is the quote recipient. One customer is active per quote session
// and it is always replaced wholesale, never merged.
type Customer struct {
	CompanyName string      `json:"companyName" validate:"required"`
	Address     string      `json:"address" validate:"required"`
	Locality    string      `json:"locality" validate:"required"`
	Province    string      `json:"province" validate:"required"`
	Email       string      `json:"email" validate:"required,email"`
	Phone       string      `json:"phone" validate:"required"`
	Date        string      `json:"date" validate:"required"`
	TaxCategory TaxCategory `json:"taxCategory" validate:"required,oneof=RegisteredResponsible SmallTaxpayer Exempt FinalConsumer"`
	TaxID       string      `json:"taxId" validate:"required_unless=TaxCategory FinalConsumer,omitempty,taxid"`
	Notes       string      `json:"notes"`
}

var taxIDPattern = regexp.MustCompile(`^\d{2}-\d{8}-\d{1}$`)

// WalkIn returns the fixed walk-in customer a quote session starts with.
// Date is the session-local quote date in YYYY-MM-DD form.
func WalkIn(date string) Customer {
	return Customer{
		CompanyName: "CONSUMIDOR FINAL",
		Address:     "AV SAN MARTIN 1625",
		Locality:    "VILLA CRESPO",
		Province:    "CIUDAD AUTONOMA DE BUENOS AIRES",
		Email:       "info@rhpisosindustriales.com.ar",
		Phone:       "1152520871",
		Date:        date,
		TaxCategory: FinalConsumer,
	}
}

// NewValidator returns a validator with the tax id rule registered. The tax
// id is required for every category except FinalConsumer and must match
// NN-NNNNNNNN-N.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("taxid", func(fl validator.FieldLevel) bool {
		return taxIDPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks c with v and converts the first failure into the
// field-addressed validation error the API surfaces inline.
func Validate(v *validator.Validate, c Customer) error {
	if v == nil {
		return nil
	}
	err := v.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return common.ValidationError(first.Field(), "invalid value for "+first.Field())
	}
	return common.BadRequest("invalid customer", err)
}
