package resolver

import (
	"testing"
)

func TestResolve(t *testing.T) {
	imports := map[string]string{
		"D":     `A\B\C`,
		"Alias": `Vendor\Lib`,
	}

	tests := []struct {
		name      string
		raw       string
		namespace string
		expected  string
	}{
		{"bare name no namespace", "Foo", "", "Foo"},
		{"bare name with namespace", "Foo", "NS", `NS\Foo`},
		{"fully qualified", `\Other\Foo`, "NS", `Other\Foo`},
		{"fully qualified single segment", `\Foo`, "NS", "Foo"},
		{"namespace relative", `namespace\Sub\Foo`, "NS", `NS\Sub\Foo`},
		{"namespace relative without namespace", `namespace\Foo`, "", "Foo"},
		{"alias single segment", "D", "NS", `A\B\C`},
		{"alias with trailing segments", `Alias\Client`, "NS", `Vendor\Lib\Client`},
		{"qualified name no alias match", `Sub\Foo`, "NS", `NS\Sub\Foo`},
		{"reserved stays untouched", "self", "NS", "self"},
		{"reserved case insensitive", "STATIC", "NS", "STATIC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.raw, tt.namespace, imports)
			if got != tt.expected {
				t.Errorf("Resolve(%q, %q) = %q, expected %q", tt.raw, tt.namespace, got, tt.expected)
			}
		})
	}
}

// An aliased single-segment name must resolve through its alias even when
// a namespace is active: the alias check runs before namespace prefixing.
func TestResolveAliasBeatsNamespace(t *testing.T) {
	imports := map[string]string{"B": `Other\B`}

	got := Resolve("B", "NS", imports)
	if got != `Other\B` {
		t.Errorf("aliased name resolved to %q, expected %q", got, `Other\B`)
	}
}

func TestIsReserved(t *testing.T) {
	reserved := []string{"self", "Self", "STATIC", "parent", "int", "string", "void", "never", "mixed", "null", "true", "FALSE", "iterable", "callable"}
	for _, name := range reserved {
		if !IsReserved(name) {
			t.Errorf("expected %q to be reserved", name)
		}
	}

	for _, name := range []string{"Foo", "Exception", "Stringable", `NS\Foo`} {
		if IsReserved(name) {
			t.Errorf("did not expect %q to be reserved", name)
		}
	}
}

func TestQualifyDeclaration(t *testing.T) {
	if got := QualifyDeclaration("Foo", ""); got != "Foo" {
		t.Errorf("expected bare name, got %q", got)
	}
	if got := QualifyDeclaration("Foo", `A\B`); got != `A\B\Foo` {
		t.Errorf("expected qualified name, got %q", got)
	}
}
