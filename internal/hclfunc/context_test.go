package hclfunc

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

func TestNewEvalContext(t *testing.T) {
	t.Run("with variables", func(t *testing.T) {
		ctx := NewEvalContext(map[string]string{
			"web_port":   "9000",
			"base_image": "eclipse-temurin:17",
		})

		varObj, ok := ctx.Variables["var"]
		if !ok {
			t.Fatal("Expected 'var' namespace to exist")
		}
		if got := varObj.GetAttr("web_port").AsString(); got != "9000" {
			t.Errorf("Expected var.web_port to be '9000', got %q", got)
		}
		if _, ok := ctx.Functions["coalesce"]; !ok {
			t.Error("Expected coalesce function to be present")
		}
	})

	t.Run("with nil variables", func(t *testing.T) {
		ctx := NewEvalContext(nil)
		if ctx.Variables != nil {
			t.Errorf("Expected no variables, got %v", ctx.Variables)
		}
		if len(ctx.Functions) != 4 {
			t.Errorf("Expected 4 functions, got %d", len(ctx.Functions))
		}
	})
}

func TestEvalExpressions(t *testing.T) {
	t.Setenv("IMAGEGEN_TEST_FROM", "registry.local/java:17")

	tests := []struct {
		name     string
		expr     string
		expected string
	}{
		{"variable", `var.web_port`, "9000"},
		{"template with variable", `"${var.web_port}0"`, "90000"},
		{"env", `env("IMAGEGEN_TEST_FROM")`, "registry.local/java:17"},
		{"env fallback", `env("IMAGEGEN_TEST_UNSET", "8080")`, "8080"},
		{"coalesce", `coalesce(env("IMAGEGEN_TEST_UNSET"), var.base_image)`, "fabric8/java"},
		{"lower", `lower("Orders")`, "orders"},
		{"upper", `upper(var.base_image)`, "FABRIC8/JAVA"},
	}

	ctx := NewEvalContext(map[string]string{"web_port": "9000", "base_image": "fabric8/java"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, diags := hclsyntax.ParseExpression([]byte(tt.expr), "test.hcl", hcl.InitialPos)
			if diags.HasErrors() {
				t.Fatalf("ParseExpression(%s) error = %s", tt.expr, diags.Error())
			}
			val, diags := expr.Value(ctx)
			if diags.HasErrors() {
				t.Fatalf("Value(%s) error = %s", tt.expr, diags.Error())
			}
			if got := val.AsString(); got != tt.expected {
				t.Errorf("%s = %q, expected %q", tt.expr, got, tt.expected)
			}
		})
	}
}

func TestEvalUnknownVariable(t *testing.T) {
	expr, diags := hclsyntax.ParseExpression([]byte(`var.missing`), "test.hcl", hcl.InitialPos)
	if diags.HasErrors() {
		t.Fatalf("ParseExpression() error = %s", diags.Error())
	}
	if _, diags := expr.Value(NewEvalContext(nil)); !diags.HasErrors() {
		t.Error("expected an error for an undefined variable")
	}
}
