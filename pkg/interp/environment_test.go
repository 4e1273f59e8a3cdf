package interp

import (
	"reflect"
	"testing"

	"gostack/pkg/lang"
)

func TestEnvironmentExclusiveNames(t *testing.T) {
	env := NewEnvironment()
	body := []lang.Stmt{&lang.PushStmt{Value: lang.Number(1)}}

	env.DefineProcedure("f", body)
	env.Bind("f", lang.Number(2))
	if _, ok := env.Procedure("f"); ok {
		t.Errorf("procedure f should be removed by Bind")
	}
	if v, ok := env.Lookup("f"); !ok || !v.Equal(lang.Number(2)) {
		t.Errorf("Lookup(f) = %v, %v; want 2, true", v, ok)
	}

	env.DefineProcedure("f", body)
	if _, ok := env.Lookup("f"); ok {
		t.Errorf("binding f should be removed by DefineProcedure")
	}
	if _, ok := env.Procedure("f"); !ok {
		t.Errorf("procedure f should exist")
	}
}

func TestEnvironmentListingAndClear(t *testing.T) {
	env := NewEnvironment()
	env.Bind("b", lang.Bool(true))
	env.Bind("a", lang.String("x"))
	env.DefineProcedure("q", nil)
	env.DefineProcedure("p", nil)

	if got, want := env.Variables(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Variables() = %v; want %v", got, want)
	}
	if got, want := env.Procedures(), []string{"p", "q"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Procedures() = %v; want %v", got, want)
	}

	env.Clear()
	if len(env.Variables()) != 0 || len(env.Procedures()) != 0 {
		t.Errorf("Clear() left names behind: %v %v", env.Variables(), env.Procedures())
	}
}

func TestEnvironmentProcedureReturnsCopy(t *testing.T) {
	env := NewEnvironment()
	env.DefineProcedure("p", []lang.Stmt{&lang.UnaryStmt{Op: lang.Print}})

	got, _ := env.Procedure("p")
	got[0] = &lang.UnaryStmt{Op: lang.Drop}

	again, _ := env.Procedure("p")
	if s, ok := again[0].(*lang.UnaryStmt); !ok || s.Op != lang.Print {
		t.Errorf("stored body was modified through a returned copy: %v", again)
	}
}
