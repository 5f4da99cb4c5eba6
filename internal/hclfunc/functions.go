// Package hclfunc provides the functions available in imagegen.hcl expressions.
package hclfunc

import (
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// EnvFunc returns a function that reads an environment variable. An optional second
// argument is returned when the variable is unset or empty.
//
// Example usage in HCL:
//
//	webPort = env("WEB_PORT", "8080")
func EnvFunc() function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{
				Name: "varname",
				Type: cty.String,
			},
		},
		VarParam: &function.Parameter{
			Name: "fallback",
			Type: cty.String,
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			if value := os.Getenv(args[0].AsString()); value != "" {
				return cty.StringVal(value), nil
			}
			if len(args) > 1 && !args[1].IsNull() {
				return cty.StringVal(args[1].AsString()), nil
			}
			return cty.StringVal(""), nil
		},
	})
}

// LowerFunc returns a function that converts a string to lowercase.
//
// Example usage in HCL:
//
//	alias = lower("Orders")  // returns "orders"
func LowerFunc() function.Function {
	return stringFunc(strings.ToLower)
}

// UpperFunc returns a function that converts a string to uppercase.
func UpperFunc() function.Function {
	return stringFunc(strings.ToUpper)
}

// CoalesceFunc returns a function that yields its first non-empty argument, or an
// empty string when every argument is empty.
//
// Example usage in HCL:
//
//	from = coalesce(env("BASE_IMAGE"), var.base_image, "eclipse-temurin:17")
func CoalesceFunc() function.Function {
	return function.New(&function.Spec{
		VarParam: &function.Parameter{
			Name:      "values",
			Type:      cty.String,
			AllowNull: true,
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			for _, arg := range args {
				if arg.IsNull() {
					continue
				}
				if s := arg.AsString(); s != "" {
					return cty.StringVal(s), nil
				}
			}
			return cty.StringVal(""), nil
		},
	})
}

func stringFunc(fn func(string) string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{
				Name: "str",
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.StringVal(fn(args[0].AsString())), nil
		},
	})
}

// Functions returns every function available in settings files:
//   - env: read an environment variable with an optional fallback
//   - lower, upper: change case
//   - coalesce: first non-empty value
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"env":      EnvFunc(),
		"lower":    LowerFunc(),
		"upper":    UpperFunc(),
		"coalesce": CoalesceFunc(),
	}
}
