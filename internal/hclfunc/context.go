package hclfunc

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// NewEvalContext creates an evaluation context with the functions from Functions() and
// the given variables exposed under the "var" namespace, so that var.web_port resolves
// in expressions. variables may be nil.
//
// Example usage:
//
//	ctx := NewEvalContext(map[string]string{"web_port": "8080"})
//	diags := gohcl.DecodeBody(file.Body, ctx, &settings)
func NewEvalContext(variables map[string]string) *hcl.EvalContext {
	ctx := &hcl.EvalContext{
		Functions: Functions(),
	}
	if len(variables) == 0 {
		return ctx
	}

	varMap := make(map[string]cty.Value, len(variables))
	for k, v := range variables {
		varMap[k] = cty.StringVal(v)
	}
	ctx.Variables = map[string]cty.Value{
		"var": cty.ObjectVal(varMap),
	}
	return ctx
}
