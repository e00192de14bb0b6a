package handlers

import (
	"errors"
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterValidators adds the decimal binding rules to gin's validator:
// decimal_gt0, decimal_gte0, decimal_nonzero and decimal_scale2.
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}

		// decimals are validated through their string form
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

		rules := map[string]func(decimal.Decimal) bool{
			"decimal_gt0":     decimal.Decimal.IsPositive,
			"decimal_gte0":    func(d decimal.Decimal) bool { return !d.IsNegative() },
			"decimal_nonzero": func(d decimal.Decimal) bool { return !d.IsZero() },
			"decimal_scale2":  func(d decimal.Decimal) bool { return accounting.CheckScale(d) == nil },
		}
		for tag, rule := range rules {
			if err := v.RegisterValidation(tag, decimalRule(rule)); err != nil {
				validatorsErr = err
				return
			}
		}
	})
	return validatorsErr
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func decimalRule(rule func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && rule(d)
	}
}
