package handler

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that understands decimal.Decimal fields
// through the decimal_gt and decimal_gte tags.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterValidation("decimal_gt", decimalCompare(func(value, limit decimal.Decimal) bool {
		return value.GreaterThan(limit)
	}))
	v.RegisterValidation("decimal_gte", decimalCompare(func(value, limit decimal.Decimal) bool {
		return value.GreaterThanOrEqual(limit)
	}))

	return v
}

func decimalCompare(ok func(value, limit decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		limit, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return ok(value, limit)
	}
}
