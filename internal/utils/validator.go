package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationErrorDetail represents the structure of a single validation error.
type ValidationErrorDetail struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Expected string      `json:"expected"`
	Received interface{} `json:"received"`
}

// ValidationErrorData represents the data field in the validation error response.
type ValidationErrorData struct {
	Errors        []ValidationErrorDetail `json:"errors"`
	Documentation string                  `json:"documentation"`
}

const DocumentationLink = "/swagger/index.html"

// BindAndValidate binds the request body to the given object and validates it.
// If validation fails, it sends a formatted error response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondValidationError(c, obj, err)
		return false
	}
	return true
}

// BindQueryAndValidate is BindAndValidate for query-string parameters.
func BindQueryAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		RespondValidationError(c, obj, err)
		return false
	}
	return true
}

// RespondValidationError writes the 400 envelope for a binding error.
func RespondValidationError(c *gin.Context, obj interface{}, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Status:  http.StatusBadRequest,
		Message: "Invalid request parameters",
		Data: ValidationErrorData{
			Errors:        describeBindingError(obj, err),
			Documentation: DocumentationLink,
		},
	})
}

func describeBindingError(obj interface{}, err error) []ValidationErrorDetail {
	var validationErrors []ValidationErrorDetail

	var errs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &errs):
		for _, e := range errs {
			field := getJSONTagName(obj, e.StructField())
			detail := ValidationErrorDetail{
				Field:    field,
				Message:  fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", field, e.Tag()),
				Expected: e.Param(),
				Received: e.Value(),
			}
			if detail.Expected == "" {
				detail.Expected = e.Tag()
			}

			switch e.Tag() {
			case "required":
				detail.Message = fmt.Sprintf("Field '%s' is required", field)
				detail.Expected = "not null"
			case "email":
				detail.Message = fmt.Sprintf("Field '%s' must be a valid email address", field)
				detail.Expected = "email format"
			case "min":
				detail.Message = fmt.Sprintf("Field '%s' must be at least %s characters long", field, e.Param())
				detail.Expected = fmt.Sprintf("min length %s", e.Param())
			case "max":
				detail.Message = fmt.Sprintf("Field '%s' must be at most %s characters long", field, e.Param())
				detail.Expected = fmt.Sprintf("max length %s", e.Param())
			case "oneof":
				detail.Message = fmt.Sprintf("Field '%s' must be one of [%s]", field, e.Param())
				detail.Expected = fmt.Sprintf("one of [%s]", e.Param())
			}

			validationErrors = append(validationErrors, detail)
		}
	case errors.As(err, &typeErr):
		validationErrors = append(validationErrors, ValidationErrorDetail{
			Field:    typeErr.Field,
			Message:  fmt.Sprintf("Field '%s' has invalid type", typeErr.Field),
			Expected: typeErr.Type.String(),
			Received: typeErr.Value,
		})
	case errors.As(err, &syntaxErr):
		validationErrors = append(validationErrors, ValidationErrorDetail{
			Field:    "body",
			Message:  "Malformed JSON or invalid request body",
			Expected: "valid JSON",
			Received: "invalid",
		})
	default:
		// custom UnmarshalJSON failures (dates, amounts) land here
		validationErrors = append(validationErrors, ValidationErrorDetail{
			Field:    "body",
			Message:  err.Error(),
			Expected: "valid request body",
			Received: "invalid",
		})
	}

	return validationErrors
}

func getJSONTagName(obj interface{}, fieldName string) string {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fieldName
	}
	if f, ok := t.FieldByName(fieldName); ok {
		for _, key := range []string{"json", "form"} {
			if tag := f.Tag.Get(key); tag != "" && tag != "-" {
				for i := 0; i < len(tag); i++ {
					if tag[i] == ',' {
						return tag[:i]
					}
				}
				return tag
			}
		}
	}
	return fieldName
}
