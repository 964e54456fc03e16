package social

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var payloadValidator = validator.New(validator.WithRequiredStructEnabled())

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PostPayload is the request body for creating or updating a post.
type PostPayload struct {
	Title string   `json:"title" validate:"required"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
	Media *Media   `json:"media,omitempty"`
}

// validatePayload runs struct validation and converts the first violation to
// a BadRequest error so callers surface it like a rejected request, without
// touching the network.
func validatePayload(v any) *Error {
	err := payloadValidator.Struct(v)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) && len(invalid) > 0 {
		return &Error{Kind: KindBadRequest, Message: fieldMessage(invalid[0])}
	}
	return &Error{Kind: KindBadRequest, Message: "Invalid input!"}
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return "The " + field + " field is required!"
	case "email":
		return "The email address is not valid!"
	case "min":
		return "The " + field + " must be at least " + fe.Param() + " characters!"
	default:
		return "The " + field + " field is not valid!"
	}
}
