package utils

import (
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/campus-hq/portal-service/internal/errors"
	"github.com/campus-hq/portal-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Matric numbers look like "CSC/2019/044" or "U19CS1023"; accept letters,
// digits and slashes between 6 and 30 chars.
var matricPattern = regexp.MustCompile(`^[A-Za-z0-9/]{6,30}$`)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

func ValidateMatricNumber(fl validator.FieldLevel) bool {
	return matricPattern.MatchString(fl.Field().String())
}

func ValidateAdminRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.RoleAdmin) || value == string(models.RoleSubAdmin)
}

func ValidateOwnerType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.OwnerStudent) || value == string(models.OwnerAdmin)
}

func ValidateOTPCode(fl validator.FieldLevel) bool {
	return otpPattern.MatchString(fl.Field().String())
}

// Validator wraps go-playground/validator with the portal's custom rules.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return &Validator{validate: validate}
}

// Struct validates a struct and returns the portal's validation error type,
// or nil when the value passes.
func (v *Validator) Struct(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

// Var validates a single value against a tag expression.
func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("matric_number", ValidateMatricNumber)
	validate.RegisterValidation("admin_role", ValidateAdminRole)
	validate.RegisterValidation("owner_type", ValidateOwnerType)
	validate.RegisterValidation("otp_code", ValidateOTPCode)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
