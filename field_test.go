package goform_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/reoring/goform"
)

func mustBind(t *testing.T, u *goform.UnboundField, name string, extra ...goform.Option) goform.Field {
	t.Helper()
	opts := append([]goform.Option{goform.WithMeta(goform.DefaultMeta())}, extra...)
	f, err := u.Bind(nil, name, "", nil, opts...)
	if err != nil {
		t.Fatalf("bind %q: %v", name, err)
	}
	return f
}

func TestStringFieldProcessFormdata(t *testing.T) {
	f := mustBind(t, goform.String(), "name")
	f.Process(goform.SingleMap(map[string]string{"name": "ada"}), goform.Unset)

	if got := f.Data(); got != "ada" {
		t.Fatalf("Data() = %v, want %q", got, "ada")
	}
	if got := f.RawData(); len(got) != 1 || got[0] != "ada" {
		t.Fatalf("RawData() = %v, want [ada]", got)
	}
	if got := f.Value(); got != "ada" {
		t.Fatalf("Value() = %q, want %q", got, "ada")
	}
}

func TestStringFieldAbsentKeyCoercesToEmpty(t *testing.T) {
	f := mustBind(t, goform.String(), "name")
	f.Process(goform.SingleMap(map[string]string{"other": "x"}), goform.Unset)

	if got := f.Data(); got != "" {
		t.Fatalf("Data() = %v, want empty string", got)
	}
	if got := f.RawData(); got == nil || len(got) != 0 {
		t.Fatalf("RawData() = %v, want empty non-nil slice", got)
	}
}

func TestProcessDefaultWhenUnset(t *testing.T) {
	f := mustBind(t, goform.String(), "name", goform.WithDefault("anonymous"))
	f.Process(nil, goform.Unset)

	if got := f.Data(); got != "anonymous" {
		t.Fatalf("Data() = %v, want default", got)
	}
	if got := f.ObjectData(); got != "anonymous" {
		t.Fatalf("ObjectData() = %v, want default", got)
	}

	// A callable default is invoked at process time.
	n := 0
	g := mustBind(t, goform.String(), "name", goform.WithDefault(func() any {
		n++
		return "generated"
	}))
	g.Process(nil, goform.Unset)
	if got := g.Data(); got != "generated" || n != 1 {
		t.Fatalf("Data() = %v (calls=%d), want generated once", got, n)
	}
}

func TestProcessAppliesFiltersInOrder(t *testing.T) {
	trim := func(v any) (any, error) { return strings.TrimSpace(v.(string)), nil }
	upper := func(v any) (any, error) { return strings.ToUpper(v.(string)), nil }

	f := mustBind(t, goform.String(), "name", goform.WithFilters(trim, upper))
	f.Process(goform.SingleMap(map[string]string{"name": "  ada  "}), goform.Unset)

	if got := f.Data(); got != "ADA" {
		t.Fatalf("Data() = %v, want ADA", got)
	}
}

func TestFilterErrorQueuesProcessError(t *testing.T) {
	boom := func(v any) (any, error) { return nil, errors.New("bad value") }
	never := func(v any) (any, error) {
		t.Fatal("filter after a failing one must not run")
		return v, nil
	}

	f := mustBind(t, goform.String(), "name", goform.WithFilters(boom, never))
	f.Process(goform.SingleMap(map[string]string{"name": "x"}), goform.Unset)

	if f.Validate(nil) {
		t.Fatal("Validate() = true, want false")
	}
	if got := f.Errors(); len(got) != 1 || got[0] != "bad value" {
		t.Fatalf("Errors() = %v, want [bad value]", got)
	}
}

func TestValidateRebuildsErrorsFromScratch(t *testing.T) {
	fail := func(form *goform.Form, field goform.Field) goform.Result {
		return goform.Failed("nope")
	}
	f := mustBind(t, goform.String(), "name", goform.WithValidators(fail))
	f.Process(goform.SingleMap(map[string]string{"name": "x"}), goform.Unset)

	f.Validate(nil)
	f.Validate(nil)
	if got := f.Errors(); len(got) != 1 {
		t.Fatalf("Errors() after two Validate calls = %v, want exactly one message", got)
	}
}

func TestValidatorChainHaltsOnStop(t *testing.T) {
	stop := func(form *goform.Form, field goform.Field) goform.Result {
		return goform.Stopped("halted")
	}
	after := func(form *goform.Form, field goform.Field) goform.Result {
		t.Fatal("validator after a halting one must not run")
		return goform.Passed()
	}
	f := mustBind(t, goform.String(), "name", goform.WithValidators(stop, after))
	f.Process(goform.SingleMap(map[string]string{"name": "x"}), goform.Unset)

	if f.Validate(nil) {
		t.Fatal("Validate() = true, want false")
	}
	if got := f.Errors(); len(got) != 1 || got[0] != "halted" {
		t.Fatalf("Errors() = %v, want [halted]", got)
	}
}

func TestValidatorChainCollectsThenHalts(t *testing.T) {
	soft := func(form *goform.Form, field goform.Field) goform.Result {
		return goform.Failed("soft failure")
	}
	hard := func(form *goform.Form, field goform.Field) goform.Result {
		return goform.Stopped("hard failure")
	}
	after := func(form *goform.Form, field goform.Field) goform.Result {
		t.Fatal("validator after a halting one must not run")
		return goform.Passed()
	}
	f := mustBind(t, goform.String(), "name", goform.WithValidators(soft, hard, after))
	f.Process(goform.SingleMap(map[string]string{"name": "x"}), goform.Unset)

	if f.Validate(nil) {
		t.Fatal("Validate() = true, want false")
	}
	want := []string{"soft failure", "hard failure"}
	if got := f.Errors(); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Errors() = %v, want %v", got, want)
	}
}

func TestExtraValidatorsRunAfterDeclared(t *testing.T) {
	var order []string
	declared := func(form *goform.Form, field goform.Field) goform.Result {
		order = append(order, "declared")
		return goform.Passed()
	}
	extra := func(form *goform.Form, field goform.Field) goform.Result {
		order = append(order, "extra")
		return goform.Failed("extra says no")
	}
	f := mustBind(t, goform.String(), "name", goform.WithValidators(declared))
	f.Process(goform.SingleMap(map[string]string{"name": "x"}), goform.Unset)

	if f.Validate(nil, extra) {
		t.Fatal("Validate() = true, want false")
	}
	if len(order) != 2 || order[0] != "declared" || order[1] != "extra" {
		t.Fatalf("validator order = %v, want [declared extra]", order)
	}
}

func TestDefaultLabelTitleCasesName(t *testing.T) {
	f := mustBind(t, goform.String(), "first_name")
	if got := f.Label(); got != "First Name" {
		t.Fatalf("Label() = %q, want %q", got, "First Name")
	}
	g := mustBind(t, goform.String(), "first_name", goform.WithLabel("Given name"))
	if got := g.Label(); got != "Given name" {
		t.Fatalf("Label() = %q, want explicit label", got)
	}
}

func TestBindAppliesPrefix(t *testing.T) {
	u := goform.String()
	f, err := u.Bind(nil, "city", "addr-", nil, goform.WithMeta(goform.DefaultMeta()))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if f.Name() != "addr-city" || f.ShortName() != "city" || f.ID() != "addr-city" {
		t.Fatalf("Name/ShortName/ID = %q/%q/%q", f.Name(), f.ShortName(), f.ID())
	}
	f.Process(goform.SingleMap(map[string]string{"addr-city": "Kyoto"}), goform.Unset)
	if got := f.Data(); got != "Kyoto" {
		t.Fatalf("Data() = %v, want Kyoto", got)
	}
}

func TestBindWithoutContextFails(t *testing.T) {
	_, err := goform.String().Bind(nil, "name", "", nil)
	if err == nil {
		t.Fatal("Bind() error = nil, want config error")
	}
	if _, ok := goform.AsConfigError(err); !ok {
		t.Fatalf("Bind() error = %v, want *ConfigError", err)
	}
}

func TestBindIsRepeatable(t *testing.T) {
	u := goform.String(goform.WithDefault("d"))
	a := mustBind(t, u, "name")
	b := mustBind(t, u, "name")
	a.Process(goform.SingleMap(map[string]string{"name": "one"}), goform.Unset)
	b.Process(nil, goform.Unset)

	if a.Data() == b.Data() {
		t.Fatalf("bound fields share state: %v vs %v", a.Data(), b.Data())
	}
	if got := b.Data(); got != "d" {
		t.Fatalf("second binding Data() = %v, want default", got)
	}
}

func TestCreationOrderIsMonotonic(t *testing.T) {
	a := goform.String()
	b := goform.Integer()
	if a.CreationOrder() >= b.CreationOrder() {
		t.Fatalf("creation order not increasing: %d then %d", a.CreationOrder(), b.CreationOrder())
	}
}

func TestPasswordAndFileNeverEchoValue(t *testing.T) {
	p := mustBind(t, goform.Password(), "secret")
	p.Process(goform.SingleMap(map[string]string{"secret": "hunter2"}), goform.Unset)
	if got := p.Value(); got != "" {
		t.Fatalf("password Value() = %q, want empty", got)
	}
	if got := p.Data(); got != "hunter2" {
		t.Fatalf("password Data() = %v, want hunter2", got)
	}

	f := mustBind(t, goform.File(), "upload")
	f.Process(goform.SingleMap(map[string]string{"upload": "report.pdf"}), goform.Unset)
	if got := f.Value(); got != "" {
		t.Fatalf("file Value() = %q, want empty", got)
	}
}

func TestMultipleFileKeepsAllNames(t *testing.T) {
	f := mustBind(t, goform.MultipleFile(), "uploads")
	f.Process(goform.MultiMap(map[string][]string{"uploads": {"a.txt", "b.txt"}}), goform.Unset)
	got, ok := f.Data().([]string)
	if !ok || len(got) != 2 || got[0] != "a.txt" || got[1] != "b.txt" {
		t.Fatalf("Data() = %v, want [a.txt b.txt]", f.Data())
	}
}
