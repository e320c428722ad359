// Package validator checks structs against their `validate` tags using
// go-playground/validator.
//
// Besides the stock tags it adds `decimal_gte=<n>`, an exact lower bound for
// decimal.Decimal fields, and `account` for ledger account names.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrValidationFailed is joined with one error per failing field.
var ErrValidationFailed = errors.New("struct validation failed")

var validate = newValidate()

func newValidate() *gvalidator.Validate {
	v := gvalidator.New(gvalidator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	for tag, fn := range map[string]gvalidator.Func{
		"account":     isAccount,
		"decimal_gte": isDecimalGTE,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return v
}

// decimalValue hands decimals to the tags as their exact string form. An
// invalid NullDecimal becomes nil so `required` rejects it.
func decimalValue(field reflect.Value) any {
	switch v := field.Interface().(type) {
	case decimal.Decimal:
		return v.String()
	case decimal.NullDecimal:
		if v.Valid {
			return v.Decimal.String()
		}
	}

	return nil
}

// isDecimalGTE compares the field with the tag parameter without going
// through float64, so values below float precision keep their sign.
func isDecimalGTE(fl gvalidator.FieldLevel) bool {
	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("decimal_gte: invalid bound %q", fl.Param()))
	}

	value, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}

	return value.GreaterThanOrEqual(bound)
}

// isAccount accepts printable names without whitespace.
func isAccount(fl gvalidator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return false
	}

	return strings.IndexFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || !unicode.IsPrint(r)
	}) == -1
}

// Validate returns nil when v satisfies its tags. Otherwise the error matches
// ErrValidationFailed and lists each failing field as
// `<Field> failed on '<tag>' (value: <value>)`. Non-struct input is reported as
// is.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs gvalidator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs)+1)
	errs = append(errs, ErrValidationFailed)
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("%s failed on '%s' (value: %q)", fe.Field(), fe.Tag(), fmt.Sprint(fe.Value())))
	}

	return errors.Join(errs...)
}
