// Package validators holds the custom validator tags shared by domain entities,
// request DTOs and configuration sections.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Contract status values accepted by the contractStatus tag.
var contractStatuses = map[string]struct{}{
	"draft":      {},
	"in_review":  {},
	"approved":   {},
	"rejected":   {},
	"executed":   {},
	"expired":    {},
	"terminated": {},
	"archived":   {},
}

// User roles accepted by the userRole tag.
var userRoles = map[string]struct{}{
	"admin":    {},
	"legal":    {},
	"approver": {},
	"viewer":   {},
}

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// ErrInvalid is wrapped by every error ValidateStruct returns.
var ErrInvalid = errors.New("validation failed")

var (
	instance     *validator.Validate
	instanceOnce sync.Once
)

// ContractStatusValidation checks that the field holds a known contract status.
func ContractStatusValidation(fl validator.FieldLevel) bool {
	_, ok := contractStatuses[fl.Field().String()]
	return ok
}

// UserRoleValidation checks that the field holds a known user role.
func UserRoleValidation(fl validator.FieldLevel) bool {
	_, ok := userRoles[fl.Field().String()]
	return ok
}

// CurrencyValidation checks for a three letter upper-case ISO 4217 code.
func CurrencyValidation(fl validator.FieldLevel) bool {
	return currencyPattern.MatchString(fl.Field().String())
}

// SlugValidation checks for a lower-case kebab slug of at most 63 characters.
func SlugValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return len(s) <= 63 && slugPattern.MatchString(s)
}

// New returns a validator with every custom tag registered.
func New() (*validator.Validate, error) {
	validate := validator.New()

	custom := map[string]validator.Func{
		"contractStatus": ContractStatusValidation,
		"userRole":       UserRoleValidation,
		"currency":       CurrencyValidation,
		"slug":           SlugValidation,
	}
	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("failed to register custom validator %s: %w", tag, err)
		}
	}
	return validate, nil
}

func shared() *validator.Validate {
	instanceOnce.Do(func() {
		v, err := New()
		if err != nil {
			panic(err)
		}
		instance = v
	})
	return instance
}

// ValidateStruct validates s and flattens validation errors into a single message.
func ValidateStruct(s interface{}) error {
	err := shared().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, messages)
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}
