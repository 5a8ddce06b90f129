package util

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type ApiError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Messages per validation tag. %[1]v is the field, %[2]v the tag parameter.
var tagMessages = map[string]string{
	"required":    "%[1]v is required",
	"email":       "Invalid email",
	"numeric":     "%[1]v must be numeric",
	"min":         "%[1]v must be at least %[2]v characters",
	"max":         "%[1]v must be at most %[2]v characters",
	"len":         "%[1]v must be exactly %[2]v characters",
	"gte":         "%[1]v must be greater than or equal to %[2]v",
	"lte":         "%[1]v must be less than or equal to %[2]v",
	"eqfield":     "%[1]v must be equal to %[2]v",
	"gtfield":     "%[1]v must be after %[2]v",
	"oneof":       "%[1]v must be one of: %[2]v",
	"unique":      "%[1]v must not contain duplicates",
	"url":         "%[1]v must be a valid URL",
	"cmin":        "%[1]v must be at least %[2]v non-whitespace characters",
	"cmax":        "%[1]v must be at most %[2]v non-whitespace characters",
	"strNotEmpty": "%[1]v must not be empty or contain only whitespace characters",
	"termCode":    "%[1]v must be a six digit term code",
	"hexColor":    "%[1]v must be a color like #1F3A5F",
	"clockTime":   "%[1]v must be a time like 08:30",
}

func messageFor(fe validator.FieldError) string {
	format, ok := tagMessages[fe.Tag()]
	if !ok {
		return fe.Error()
	}
	if !strings.Contains(format, "%[2]v") {
		return fmt.Sprintf(format, fe.Field())
	}
	return fmt.Sprintf(format, fe.Field(), fe.Param())
}

// GenerateErrorMessages turns err into the list sent back in a failed
// response. Validation errors yield one entry per failing field; any other
// error yields a single entry under field, or "Unknown" when none is given.
//
//	GenerateErrorMessages(err, "templateId")
func GenerateErrorMessages(err error, field ...string) []ApiError {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]ApiError, len(ve))
		for i, fe := range ve {
			out[i] = ApiError{Field: fe.Field(), Message: messageFor(fe)}
		}
		return out
	}

	name := "Unknown"
	if len(field) > 0 && field[0] != "" {
		name = field[0]
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []ApiError{{Field: name, Message: "Record not found"}}
	}
	return []ApiError{{Field: name, Message: err.Error()}}
}

// stringRule adapts a string predicate to a validator func. Non-string
// fields always fail.
func stringRule(ok func(s, param string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return ok(field.String(), fl.Param())
	}
}

// trimmedLenRule compares the trimmed length against the integer tag parameter.
func trimmedLenRule(cmp func(n, limit int) bool) validator.Func {
	return stringRule(func(s, param string) bool {
		limit, err := strconv.Atoi(param)
		if err != nil {
			return false
		}
		return cmp(len(strings.TrimSpace(s)), limit)
	})
}

// Custom binding tags:
//
//	strNotEmpty  not blank after trimming
//	cmin=N       at least N characters after trimming
//	cmax=N       at most N characters after trimming
//	termCode     six digit term such as 202525
//	hexColor     #RRGGBB
//	clockTime    24 hour HH:MM or HH:MM:SS
var customRules = map[string]validator.Func{
	"strNotEmpty": stringRule(func(s, _ string) bool { return strings.TrimSpace(s) != "" }),
	"cmin":        trimmedLenRule(func(n, limit int) bool { return n >= limit }),
	"cmax":        trimmedLenRule(func(n, limit int) bool { return n <= limit }),
	"termCode":    stringRule(func(s, _ string) bool { return facultycert.IsTermCode(s) }),
	"hexColor":    stringRule(func(s, _ string) bool { return facultycert.IsHexColor(s) }),
	"clockTime": stringRule(func(s, _ string) bool {
		_, err := ParseClockTime(s)
		return err == nil
	}),
}

// RegisterValidations adds the custom tags to a validator, e.g. gin's binding engine.
func RegisterValidations(v *validator.Validate) {
	for tag, fn := range customRules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
}
