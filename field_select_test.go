package goform_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/goform"
)

var colorChoices = []goform.Choice{
	{Value: "red", Label: "Red"},
	{Value: "green", Label: "Green"},
	{Value: "blue", Label: "Blue"},
}

func TestSelectFieldBindsChoice(t *testing.T) {
	f := mustBind(t, goform.Select(goform.WithChoices(colorChoices...)), "color")
	f.Process(goform.SingleMap(map[string]string{"color": "green"}), goform.Unset)

	if got := f.Data(); got != "green" {
		t.Fatalf("Data() = %v, want green", got)
	}
	if !f.Validate(nil) {
		t.Fatalf("Validate() = false, errors %v", f.Errors())
	}
}

func TestSelectFieldRejectsUnknownValue(t *testing.T) {
	f := mustBind(t, goform.Select(goform.WithChoices(colorChoices...)), "color")
	f.Process(goform.SingleMap(map[string]string{"color": "mauve"}), goform.Unset)

	if f.Validate(nil) {
		t.Fatal("Validate() = true, want false")
	}
	if got := f.Errors(); len(got) != 1 || got[0] != "Not a valid choice" {
		t.Fatalf("Errors() = %v", got)
	}
}

func TestSelectFieldIntCoercedChoices(t *testing.T) {
	u := goform.Select(
		goform.WithChoices(goform.Choice{Value: "1", Label: "One"}, goform.Choice{Value: "2", Label: "Two"}),
		goform.WithCoerce(goform.IntCoerce),
	)

	f := mustBind(t, u, "n")
	f.Process(goform.SingleMap(map[string]string{"n": "2"}), goform.Unset)
	if got := f.Data(); got != 2 {
		t.Fatalf("Data() = %v, want 2", got)
	}
	if !f.Validate(nil) {
		t.Fatalf("Validate() = false, errors %v", f.Errors())
	}

	g := mustBind(t, u, "n")
	g.Process(goform.SingleMap(map[string]string{"n": "9"}), goform.Unset)
	if g.Validate(nil) {
		t.Fatal("Validate() = true, want false")
	}
	if got := g.Errors(); len(got) != 1 || got[0] != "Not a valid choice" {
		t.Fatalf("Errors() = %v", got)
	}
}

func TestSelectFieldCoercionFailureKeepsPriorData(t *testing.T) {
	intChoices := []goform.Choice{{Value: "1", Label: "One"}, {Value: "2", Label: "Two"}}
	f := mustBind(t, goform.Select(
		goform.WithChoices(intChoices...),
		goform.WithCoerce(goform.IntCoerce),
	), "n")

	// Object data coerces to 2; the bad wire value must not clobber it.
	f.Process(goform.SingleMap(map[string]string{"n": "abc"}), 2)

	if got := f.Data(); got != 2 {
		t.Fatalf("Data() = %v, want prior data 2", got)
	}
	if f.Validate(nil) {
		t.Fatal("Validate() = true, want false")
	}
	if got := f.Errors(); len(got) != 1 || got[0] != "Invalid Choice: could not coerce" {
		t.Fatalf("Errors() = %v", got)
	}
}

func TestSelectFieldOptionsView(t *testing.T) {
	f := mustBind(t, goform.Select(goform.WithChoices(colorChoices...)), "color")
	f.Process(goform.SingleMap(map[string]string{"color": "blue"}), goform.Unset)

	sf, ok := f.(*goform.SelectField)
	if !ok {
		t.Fatalf("bound field is %T", f)
	}
	want := []goform.ChoiceOption{
		{Value: "red", Label: "Red"},
		{Value: "green", Label: "Green"},
		{Value: "blue", Label: "Blue", Selected: true},
	}
	if diff := cmp.Diff(want, sf.Options()); diff != "" {
		t.Fatalf("Options() mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectFieldSetChoicesPerRequest(t *testing.T) {
	f := mustBind(t, goform.Select(), "color")
	sf := f.(*goform.SelectField)
	sf.SetChoices(colorChoices)
	f.Process(goform.SingleMap(map[string]string{"color": "red"}), goform.Unset)

	if !f.Validate(nil) {
		t.Fatalf("Validate() = false, errors %v", f.Errors())
	}
}

func TestSelectMultipleFieldBindsAllValues(t *testing.T) {
	f := mustBind(t, goform.SelectMultiple(goform.WithChoices(colorChoices...)), "colors")
	f.Process(goform.Values(url.Values{"colors": {"red", "blue"}}), goform.Unset)

	want := []any{"red", "blue"}
	if diff := cmp.Diff(want, f.Data()); diff != "" {
		t.Fatalf("Data() mismatch (-want +got):\n%s", diff)
	}
	if !f.Validate(nil) {
		t.Fatalf("Validate() = false, errors %v", f.Errors())
	}
}

func TestSelectMultipleFieldReportsFirstBadChoice(t *testing.T) {
	f := mustBind(t, goform.SelectMultiple(goform.WithChoices(colorChoices...)), "colors")
	f.Process(goform.Values(url.Values{"colors": {"red", "mauve", "taupe"}}), goform.Unset)

	if f.Validate(nil) {
		t.Fatal("Validate() = true, want false")
	}
	want := "'mauve' is not a valid choice for this field"
	if got := f.Errors(); len(got) != 1 || got[0] != want {
		t.Fatalf("Errors() = %v, want [%s]", got, want)
	}
}

func TestSelectMultipleFieldCoercionFailureIsAggregate(t *testing.T) {
	f := mustBind(t, goform.SelectMultiple(
		goform.WithChoices(goform.Choice{Value: "1", Label: "One"}),
		goform.WithCoerce(goform.IntCoerce),
	), "ns")
	f.Process(goform.Values(url.Values{"ns": {"1", "x"}}), goform.Unset)

	if f.Validate(nil) {
		t.Fatal("Validate() = true, want false")
	}
	want := "Invalid choice(s): one or more data inputs could not be coerced"
	if got := f.Errors(); len(got) != 1 || got[0] != want {
		t.Fatalf("Errors() = %v", got)
	}
}

func TestSelectMultipleFieldObjectData(t *testing.T) {
	f := mustBind(t, goform.SelectMultiple(goform.WithChoices(colorChoices...)), "colors")
	f.Process(nil, []string{"green"})

	want := []any{"green"}
	if diff := cmp.Diff(want, f.Data()); diff != "" {
		t.Fatalf("Data() mismatch (-want +got):\n%s", diff)
	}
}

func TestRadioFieldSharesSelectBehavior(t *testing.T) {
	f := mustBind(t, goform.Radio(goform.WithChoices(colorChoices...)), "color")
	if f.Type() != "radio" {
		t.Fatalf("Type() = %q, want radio", f.Type())
	}
	f.Process(goform.SingleMap(map[string]string{"color": "red"}), goform.Unset)
	if !f.Validate(nil) {
		t.Fatalf("Validate() = false, errors %v", f.Errors())
	}
}
