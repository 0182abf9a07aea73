package auth

import (
	"strings"
	"unicode"

	"github.com/forinda/contentapi/schema"
)

func hasClass(pred func(rune) bool) func(any) bool {
	return func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		return strings.ContainsFunc(s, pred)
	}
}

func lowercase(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return strings.ToLower(s)
}

var registerSchema = schema.New(map[string]schema.Field{
	"email": schema.String().Email().Trim().Transform(lowercase).Required(),
	"password": schema.String().
		Min(8, "Password must be at least 8 characters").
		Custom(hasClass(unicode.IsUpper), "Password must contain at least one uppercase letter").
		Custom(hasClass(unicode.IsLower), "Password must contain at least one lowercase letter").
		Custom(hasClass(unicode.IsDigit), "Password must contain at least one number").
		Required(),
	"name": schema.String().Min(2).Max(100).Trim().Required(),
})

var loginSchema = schema.New(map[string]schema.Field{
	"email":    schema.String().Email().Trim().Transform(lowercase).Required(),
	"password": schema.String().Required(),
})
