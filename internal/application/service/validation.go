package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return gstinPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidGSTIN reports whether s is a well-formed 15 character GSTIN
func ValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// fieldErrors runs struct tag validation and flattens the result into field errors
// named like "lines[0].itemName".
func fieldErrors(input interface{}) []apperror.FieldError {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperror.FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperror.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: "failed on the '" + fe.Tag() + "' rule",
		})
	}
	return out
}

// fieldPath drops the root struct name and camel-cases each segment, so
// "CommitInput.Lines[0].HSNCode" becomes "lines[0].hsnCode".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = lowerLead(p)
	}
	return strings.Join(parts, ".")
}

// lowerLead lower-cases the leading run of capitals, leaving the last one alone
// when it starts the next word.
func lowerLead(s string) string {
	n := 0
	for n < len(s) && unicode.IsUpper(rune(s[n])) {
		n++
	}
	if n > 1 && n < len(s) && unicode.IsLower(rune(s[n])) {
		n--
	}
	return strings.ToLower(s[:n]) + s[n:]
}

func requireNonNegative(errs []apperror.FieldError, field string, v decimal.Decimal) []apperror.FieldError {
	if v.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: field, Message: "must not be negative"})
	}
	return errs
}
