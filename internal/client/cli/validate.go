package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"min=6"`
}

type emailInput struct {
	Email string `validate:"required,email"`
}

type newPassword struct {
	Password string `validate:"min=6"`
}

type displayName struct {
	Name string `validate:"required,max=100"`
}

var fieldNames = map[string]string{
	"ReleaseYear": "release year",
	"ImageURL":    "poster url",
	"Name":        "display name",
}

func checkCredentials(email, password string) error {
	return validationError("credentials", validate.Struct(credentials{Email: email, Password: password}))
}

func checkEmail(email string) error {
	return validationError("email", validate.Struct(emailInput{Email: email}))
}

func checkPassword(password string) error {
	return validationError("password", validate.Struct(newPassword{Password: password}))
}

func checkDisplayName(name string) error {
	return validationError("display name", validate.Struct(displayName{Name: name}))
}

func checkEntry(in models.NewCatalogEntry) error {
	return validationError("movie", validate.Struct(in))
}

// validationError rewrites validator output as a KindValidation error whose
// detail is readable by the user. A nil err stays nil.
func validationError(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return common.E(common.KindValidation, op, err)
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, describe(fe))
	}
	return common.E(common.KindValidation, op, errors.New(strings.Join(parts, "; ")))
}

func describe(fe validator.FieldError) string {
	field, ok := fieldNames[fe.Field()]
	if !ok {
		field = strings.ToLower(fe.Field())
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return field + " is invalid"
}
