package form

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var israeliPhone = regexp.MustCompile(`^0(5[0-9]|[2-4]|[8-9]|7[0-9])-?\d{3}-?\d{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("ilphone", func(fl validator.FieldLevel) bool {
		return IsIsraeliPhone(fl.Field().String())
	})
	return v
}

// IsIsraeliPhone accepts local Israeli landline and mobile formats.
func IsIsraeliPhone(s string) bool {
	return israeliPhone.MatchString(strings.TrimSpace(s))
}

// Validate checks a payload against its variant's schema.
func Validate(p Payload) error {
	if err := validate.Struct(p); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			return errors.New(describe(verr))
		}
		return err
	}
	if q, ok := p.(*QuotePayload); ok {
		return checkQuoteTotals(q)
	}
	return nil
}

// DecodeAndValidate is Decode followed by Validate.
func DecodeAndValidate(t Type, data []byte) (Payload, error) {
	p, err := Decode(t, data)
	if err != nil {
		return nil, err
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

const moneyTolerance = 0.05

func checkQuoteTotals(q *QuotePayload) error {
	var subtotal float64
	for i, it := range q.Items {
		if math.Abs(it.Quantity*it.UnitPrice-it.Total) > moneyTolerance {
			return fmt.Errorf("items[%d].total does not match quantity * unit_price", i)
		}
		subtotal += it.Total
	}
	if math.Abs(subtotal-q.Subtotal) > moneyTolerance {
		return errors.New("subtotal does not match the sum of item totals")
	}
	if math.Abs(q.Subtotal*q.VATRate-q.VATAmount) > moneyTolerance {
		return errors.New("vat_amount does not match subtotal * vat_rate")
	}
	if math.Abs(q.Subtotal+q.VATAmount-q.Total) > moneyTolerance {
		return errors.New("total does not match subtotal + vat_amount")
	}
	return nil
}

func describe(verr validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}

		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", field)
		case "min", "gte":
			msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "max", "lte":
			msg = fmt.Sprintf("%s must be at most %s", field, fe.Param())
		case "gt":
			msg = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
		case "eq":
			msg = fmt.Sprintf("%s must be %s", field, fe.Param())
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
		case "datetime":
			msg = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
		case "ilphone":
			msg = fmt.Sprintf("%s must be a valid Israeli phone number", field)
		case "uuid":
			msg = fmt.Sprintf("%s must be a valid id", field)
		default:
			msg = fmt.Sprintf("%s is invalid", field)
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}
