package rest

import (
	"errors"
	"reflect"
	"strconv"

	producterrors "github.com/abgdnv/product-api/internal/errors"
	"github.com/abgdnv/product-api/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// violationMessages maps a JSON field and the rule it failed to the message reported to the client.
var violationMessages = map[string]map[string]string{
	"name": {
		"notblank": "Product name cannot be blank",
	},
	"price": {
		"required": "Price cannot be null",
		"gt":       "Price must be positive",
		"scale":    "Price cannot have more than " + strconv.Itoa(priceScale) + " decimal places",
		"max":      "Price must be less than " + priceLimit.String(),
	},
	"quantityOfStock": {
		"required": "Quantity cannot be null",
		"gte":      "Quantity cannot be negative",
		"lte":      "Quantity cannot exceed 2147483647",
	},
}

// Prices are stored as NUMERIC(19,2).
const priceScale = 2

var priceLimit = decimal.New(1, 17)

// Validator checks product requests.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator. Decimal values are validated through their sign.
func NewValidator() *Validator {
	v := web.NewValidator()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterStructValidation(validatePriceRange, ProductRequest{})
	return &Validator{validate: v}
}

// validatePriceRange rejects positive prices the price column cannot hold exactly.
// Absent and non-positive prices are already reported by the field rules.
func validatePriceRange(sl validator.StructLevel) {
	req := sl.Current().Interface().(ProductRequest)
	if req.Price == nil || req.Price.Sign() <= 0 {
		return
	}
	switch {
	case !req.Price.Equal(req.Price.Truncate(priceScale)):
		sl.ReportError(req.Price, "price", "Price", "scale", strconv.Itoa(priceScale))
	case req.Price.Cmp(priceLimit) >= 0:
		sl.ReportError(req.Price, "price", "Price", "max", priceLimit.String())
	}
}

// Validate returns nil for an acceptable request, otherwise a *errors.ValidationError listing every violation.
func (v *Validator) Validate(req ProductRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	violations := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		violations[fieldErr.Field()] = message(fieldErr.Field(), fieldErr.Tag())
	}
	return &producterrors.ValidationError{Violations: violations}
}

func message(field, tag string) string {
	if msg, ok := violationMessages[field][tag]; ok {
		return msg
	}
	return "failed on rule: " + tag
}
