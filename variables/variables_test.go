package variables_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scriptlang/variables"
)

func TestStoreSetGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.variables")
	defer teardown()
	//
	store := variables.NewStore()
	if _, ok := store.Get("a"); ok {
		t.Error("expected fresh store to have no value for 'a'")
	}
	store.Set("a", 5)
	if v, ok := store.Get("a"); !ok || v != 5 {
		t.Errorf("expected a=5, have %d (%v)", v, ok)
	}
	store.Set("a", -7)
	if v, _ := store.Get("a"); v != -7 {
		t.Errorf("expected a to be overwritten with -7, is %d", v)
	}
	if store.Len() != 1 {
		t.Errorf("expected store to contain 1 variable, has %d", store.Len())
	}
}

func TestStoreZeroIsNotNull(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.variables")
	defer teardown()
	//
	store := variables.NewStore()
	store.Set("z", 0)
	if s := variables.ValueString(store.Get("z")); s != "0" {
		t.Errorf("expected z to render as 0, is %q", s)
	}
	if s := variables.ValueString(store.Get("ghost")); s != variables.NullValue {
		t.Errorf("expected ghost to render as %s, is %q", variables.NullValue, s)
	}
}

func TestStoreReset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.variables")
	defer teardown()
	//
	store := variables.NewStore()
	store.Set("a", 1)
	store.Set("b", 2)
	snap := store.Snapshot()
	store.Reset()
	if store.Len() != 0 {
		t.Errorf("expected store to be empty after reset, has %d entries", store.Len())
	}
	if len(snap) != 2 || snap["a"] != 1 || snap["b"] != 2 {
		t.Errorf("expected snapshot to survive reset, is %v", snap)
	}
}

func TestStoreShowSorted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.variables")
	defer teardown()
	//
	store := variables.NewStore()
	store.Set("b", 2)
	store.Set("a", 1)
	store.Set("$c", 3)
	if s := store.Show(nil).String(); s != "$c = 3\na = 1\nb = 2\n" {
		t.Errorf("unexpected listing of variables: %q", s)
	}
}

func TestNamingRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.variables")
	defer teardown()
	//
	for i, x := range []struct {
		name  string
		valid bool
	}{
		{"a", true},
		{"abc", true},
		{"ABC", true},
		{"x2", true},
		{"$x", true},
		{"$$$", true},
		{"5$x", true},
		{"42", true},
		{"", false},
		{"a b", false},
		{"a-b", false},
		{"a_b", false},
		{"a[1]", false},
		{"ä", false},
		{"x.y", false},
	} {
		if v := variables.IsValidName(x.name); v != x.valid {
			t.Errorf("test %d: expected IsValidName(%q) to be %v", i, x.name, x.valid)
		}
	}
}

func TestResolveReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.variables")
	defer teardown()
	//
	store := variables.NewStore()
	store.Set("n", 3)
	store.Set("$m", 4)
	for i, x := range []struct {
		ref string
		v   int64
		ok  bool
	}{
		{"$n", 3, true},
		{"$$m", 4, true},
		{"$m", 0, false},
		{"$", 0, false},
	} {
		if !variables.IsReference(x.ref) {
			t.Errorf("test %d: expected %q to be a reference", i, x.ref)
		}
		v, ok := variables.Resolve(store, x.ref)
		if v != x.v || ok != x.ok {
			t.Errorf("test %d: expected %q to resolve to %d/%v, is %d/%v", i, x.ref, x.v, x.ok, v, ok)
		}
	}
	if variables.IsReference("n") {
		t.Error("expected 'n' not to be a reference")
	}
}
