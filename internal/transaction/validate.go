package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Outcome is the result of validating a single record. It is either Valid or Invalid.
type Outcome interface {
	isOutcome()
}

// Valid carries the normalized transaction of a record that met every constraint.
type Valid struct {
	Transaction Transaction
}

// Invalid carries one "<field>: <reason>" message per violated field.
type Invalid struct {
	Errors []string
}

func (Valid) isOutcome()   {}
func (Invalid) isOutcome() {}

// Validator checks untyped records against the Transaction shape.
// It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator. It panics if the custom rules cannot be registered.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})

	mustRegister(v, "yyyymmdd", matching(datePattern))
	mustRegister(v, "hhmm", matching(timePattern))

	return &Validator{validate: v}
}

var defaultValidator = sync.OnceValue(NewValidator)

// Validate checks rec with the package default Validator.
func Validate(rec Record) Outcome {
	return defaultValidator().Validate(rec)
}

// Validate type-checks every field of rec and then applies the field constraints.
// All fields are checked; the messages come back in canonical field order.
func (v *Validator) Validate(rec Record) Outcome {
	errs := make(fieldErrors)

	tx := Transaction{
		Date:        stringField(rec, FieldDate, errs),
		Time:        stringField(rec, FieldTime, errs),
		Merchant:    stringField(rec, FieldMerchant, errs),
		Memo:        optionalStringField(rec, FieldMemo, errs),
		AmountKRW:   numberField(rec, FieldAmountKRW, errs),
		PaymentType: PaymentType(stringField(rec, FieldPaymentType, errs)),
		City:        stringField(rec, FieldCity, errs),
		Channel:     Channel(stringField(rec, FieldChannel, errs)),
	}

	if err := v.validate.Struct(tx); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			panic(fmt.Sprintf("transaction: validator misconfigured: %v", err))
		}

		for _, fe := range verrs {
			// A type error already explains the zero value the constraint tripped on.
			if _, seen := errs[fe.Field()]; seen {
				continue
			}

			errs[fe.Field()] = constraintReason(fe)
		}
	}

	if len(errs) > 0 {
		return Invalid{Errors: errs.messages()}
	}

	return Valid{Transaction: tx}
}

type fieldErrors map[string]string

func (e fieldErrors) messages() []string {
	msgs := make([]string, 0, len(e))

	for _, f := range Fields {
		if reason, ok := e[f]; ok {
			msgs = append(msgs, f+": "+reason)
		}
	}

	return msgs
}

func stringField(rec Record, field string, errs fieldErrors) string {
	raw, ok := rec[field]
	if !ok || raw == nil {
		errs[field] = "required"
		return ""
	}

	s, ok := raw.(string)
	if !ok {
		errs[field] = "expected string, received " + typeName(raw)
		return ""
	}

	return s
}

func optionalStringField(rec Record, field string, errs fieldErrors) string {
	raw, ok := rec[field]
	if !ok || raw == nil {
		return ""
	}

	s, ok := raw.(string)
	if !ok {
		errs[field] = "expected string, received " + typeName(raw)
		return ""
	}

	return s
}

// numberField accepts only values that are already numeric. Strings are never coerced here.
func numberField(rec Record, field string, errs fieldErrors) float64 {
	raw, ok := rec[field]
	if !ok || raw == nil {
		errs[field] = "required"
		return 0
	}

	var f float64

	switch n := raw.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		v, err := n.Float64()
		if errors.Is(err, strconv.ErrRange) {
			errs[field] = "must be a finite number"
			return 0
		}

		if err != nil {
			errs[field] = "expected number, received " + string(n)
			return 0
		}

		f = v
	default:
		errs[field] = "expected number, received " + typeName(raw)
		return 0
	}

	if math.IsInf(f, 0) || math.IsNaN(f) {
		errs[field] = "must be a finite number"
		return 0
	}

	return f
}

func constraintReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "yyyymmdd":
		return "must be a date in YYYY-MM-DD format"
	case "hhmm":
		return "must be a time in HH:MM format"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}

	return fmt.Sprintf("failed %q constraint", fe.Tag())
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float32, float64, int, int32, int64, uint, uint32, uint64, json.Number:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}

	return fmt.Sprintf("%T", v)
}

func matching(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("transaction: registering %q rule: %v", tag, err))
	}
}
