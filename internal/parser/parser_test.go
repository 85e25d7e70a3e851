// # internal/parser/parser_test.go
package parser

import (
	"testing"
)

func parseSource(t *testing.T, code string) *File {
	t.Helper()

	p := NewParser("")
	file, err := p.ParseFile("test.php", []byte(code))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	return file
}

func declarationNames(file *File) []string {
	names := make([]string, 0, len(file.Declarations))
	for _, decl := range file.Declarations {
		names = append(names, decl.Name)
	}
	return names
}

func referenceNames(file *File) map[string]RefContext {
	refs := make(map[string]RefContext, len(file.References))
	for _, ref := range file.References {
		refs[ref.Name] = ref.Context
	}
	return refs
}

func TestDeclarations(t *testing.T) {
	code := `<?php
namespace App\Models;

class User {}
interface Identifiable {}
trait Timestamps {}
`
	file := parseSource(t, code)

	expected := map[string]DeclarationKind{
		`App\Models\User`:         KindClass,
		`App\Models\Identifiable`: KindInterface,
		`App\Models\Timestamps`:   KindTrait,
	}

	if len(file.Declarations) != len(expected) {
		t.Fatalf("expected %d declarations, got %d: %v", len(expected), len(file.Declarations), declarationNames(file))
	}
	for _, decl := range file.Declarations {
		kind, ok := expected[decl.Name]
		if !ok {
			t.Errorf("unexpected declaration %q", decl.Name)
			continue
		}
		if decl.Kind != kind {
			t.Errorf("declaration %q: expected kind %s, got %s", decl.Name, kind, decl.Kind)
		}
	}
}

func TestImportsAndInheritance(t *testing.T) {
	code := `<?php
namespace App;

use Framework\Base\Controller as BaseController;
use App\Contracts\Renderable;

class HomeController extends BaseController implements Renderable {}
`
	file := parseSource(t, code)

	refs := referenceNames(file)
	if ctx, ok := refs[`Framework\Base\Controller`]; !ok || ctx != ContextExtends {
		t.Errorf("expected extends reference to Framework\\Base\\Controller, got %v", refs)
	}
	if ctx, ok := refs[`App\Contracts\Renderable`]; !ok || ctx != ContextImplements {
		t.Errorf("expected implements reference to App\\Contracts\\Renderable, got %v", refs)
	}
}

func TestGroupUse(t *testing.T) {
	code := `<?php
namespace App;

use Vendor\Lib\{ClientA, ClientB as B};

class Service {
    public function run(): void {
        new ClientA();
        new B();
    }
}
`
	file := parseSource(t, code)

	refs := referenceNames(file)
	if _, ok := refs[`Vendor\Lib\ClientA`]; !ok {
		t.Errorf("expected group import member ClientA to resolve to Vendor\\Lib\\ClientA, got %v", refs)
	}
	if _, ok := refs[`Vendor\Lib\ClientB`]; !ok {
		t.Errorf("expected aliased group import member B to resolve to Vendor\\Lib\\ClientB, got %v", refs)
	}
}

func TestTraitUse(t *testing.T) {
	code := `<?php
namespace App;

use App\Concerns\Timestamps;

class Model {
    use Timestamps;
    use \App\Concerns\SoftDeletes;
}
`
	file := parseSource(t, code)

	refs := referenceNames(file)
	if ctx, ok := refs[`App\Concerns\Timestamps`]; !ok || ctx != ContextTraitUse {
		t.Errorf("expected trait use of App\\Concerns\\Timestamps, got %v", refs)
	}
	if _, ok := refs[`App\Concerns\SoftDeletes`]; !ok {
		t.Errorf("expected trait use of App\\Concerns\\SoftDeletes, got %v", refs)
	}
}

func TestInstantiationForms(t *testing.T) {
	code := `<?php
namespace App;

function build($cls) {
    new Widget();
    $x = new \Vendor\Panel();
    new $cls();
}
`
	file := parseSource(t, code)

	refs := referenceNames(file)
	if _, ok := refs[`App\Widget`]; !ok {
		t.Errorf("expected instantiation reference App\\Widget, got %v", refs)
	}
	if _, ok := refs[`Vendor\Panel`]; !ok {
		t.Errorf("expected assignment instantiation reference Vendor\\Panel, got %v", refs)
	}
	if len(file.References) != 2 {
		t.Errorf("dynamic instantiation must be ignored and references deduplicated, got %v", file.References)
	}
}

func TestNamespaceRelativeReferences(t *testing.T) {
	code := `<?php
namespace App;

class Handler extends namespace\Base {
    public function handle(namespace\Req $request): namespace\Resp {
        $widget = new namespace\Sub\Widget();
        namespace\Registry::register($widget);
        try {
            return namespace\Resp::create();
        } catch (namespace\Err $e) {
            throw $e;
        }
    }
}
`
	file := parseSource(t, code)

	refs := referenceNames(file)
	expected := map[string]RefContext{
		`App\Base`:       ContextExtends,
		`App\Req`:        ContextTypeHint,
		`App\Resp`:       ContextTypeHint,
		`App\Sub\Widget`: ContextInstantiation,
		`App\Registry`:   ContextStaticAccess,
		`App\Err`:        ContextCatch,
	}
	for name, ctx := range expected {
		got, ok := refs[name]
		if !ok {
			t.Errorf("expected namespace-relative reference %s, got %v", name, refs)
			continue
		}
		if got != ctx {
			t.Errorf("reference %s: expected context %s, got %s", name, ctx, got)
		}
	}
	if len(refs) != len(expected) {
		t.Errorf("expected %d references, got %v", len(expected), refs)
	}
}

func TestStaticAccessAndInstanceof(t *testing.T) {
	code := `<?php
namespace App;

function check($value, $cls) {
    Registry::register($value);
    $max = Limits::MAX;
    if ($value instanceof Entity) {
        return true;
    }
    return $value instanceof $cls;
}
`
	file := parseSource(t, code)

	refs := referenceNames(file)
	if ctx, ok := refs[`App\Registry`]; !ok || ctx != ContextStaticAccess {
		t.Errorf("expected static access reference App\\Registry, got %v", refs)
	}
	if _, ok := refs[`App\Limits`]; !ok {
		t.Errorf("expected class constant reference App\\Limits, got %v", refs)
	}
	if ctx, ok := refs[`App\Entity`]; !ok || ctx != ContextInstanceof {
		t.Errorf("expected instanceof reference App\\Entity, got %v", refs)
	}
	if len(refs) != 3 {
		t.Errorf("dynamic instanceof operand must be ignored, got %v", refs)
	}
}

func TestSelfStaticParentIgnored(t *testing.T) {
	code := `<?php
namespace App;

class Child extends Base {
    public function make(): static {
        parent::init();
        self::helper();
        return new static();
    }
}
`
	file := parseSource(t, code)

	refs := referenceNames(file)
	if _, ok := refs[`App\Base`]; !ok {
		t.Errorf("expected extends reference App\\Base, got %v", refs)
	}
	if len(refs) != 1 {
		t.Errorf("self/static/parent must never be recorded, got %v", refs)
	}
}

func TestCatchClause(t *testing.T) {
	code := `<?php
namespace App;

function risky() {
    try {
        run();
    } catch (NotFound | \Vendor\Timeout $e) {
        return null;
    }
}
`
	file := parseSource(t, code)

	refs := referenceNames(file)
	if ctx, ok := refs[`App\NotFound`]; !ok || ctx != ContextCatch {
		t.Errorf("expected catch reference App\\NotFound, got %v", refs)
	}
	if _, ok := refs[`Vendor\Timeout`]; !ok {
		t.Errorf("expected catch reference Vendor\\Timeout, got %v", refs)
	}
}

func TestTypeAnnotations(t *testing.T) {
	code := `<?php
namespace App;

class Handler {
    private ?Logger $logger;

    public function handle(Request $request, int $retries): Response|Redirect {
        return new Response();
    }
}
`
	file := parseSource(t, code)

	refs := referenceNames(file)
	for _, expected := range []string{`App\Logger`, `App\Request`, `App\Response`, `App\Redirect`} {
		if _, ok := refs[expected]; !ok {
			t.Errorf("expected type annotation reference %s, got %v", expected, refs)
		}
	}
	if _, ok := refs["int"]; ok {
		t.Error("builtin parameter types must be filtered")
	}
}

func TestSequentialNamespaces(t *testing.T) {
	code := `<?php
namespace First;

class A {}

namespace Second;

class B {}
`
	file := parseSource(t, code)

	names := declarationNames(file)
	if len(names) != 2 || names[0] != `First\A` || names[1] != `Second\B` {
		t.Errorf("expected [First\\A Second\\B], got %v", names)
	}
}

func TestFunctionAndConstImportsIgnored(t *testing.T) {
	code := `<?php
namespace App;

use function Vendor\Lib\helper;
use const Vendor\Lib\LIMIT;

class Service {
    public function run(): void {
        new LIMIT();
    }
}
`
	file := parseSource(t, code)

	// LIMIT must not resolve through the const import.
	refs := referenceNames(file)
	if _, ok := refs[`App\LIMIT`]; !ok {
		t.Errorf("const import must not populate the class import table, got %v", refs)
	}
}

func TestParseErrorReported(t *testing.T) {
	p := NewParser("")
	_, err := p.ParseFile("broken.php", []byte(`<?php class {`))
	if err == nil {
		t.Fatal("expected parse error for broken source")
	}
}
