package goform_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/goform"
)

func TestValuesAdapter(t *testing.T) {
	fd := goform.Values(url.Values{"a": {"1", "2"}, "b": {"x"}})

	if !fd.Has("a") || fd.Has("missing") {
		t.Fatal("Has() misreports key presence")
	}
	if diff := cmp.Diff([]string{"1", "2"}, fd.GetAll("a")); diff != "" {
		t.Fatalf("GetAll(a) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, fd.Keys()); diff != "" {
		t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestSingleMapAdapter(t *testing.T) {
	fd := goform.SingleMap(map[string]string{"name": "ada"})
	if diff := cmp.Diff([]string{"ada"}, fd.GetAll("name")); diff != "" {
		t.Fatalf("GetAll(name) mismatch (-want +got):\n%s", diff)
	}
	if fd.GetAll("missing") != nil {
		t.Fatal("GetAll(missing) should be nil")
	}
}

func TestJSONObjectAdapter(t *testing.T) {
	fd, err := goform.JSONObject([]byte(`{
		"name": "ada",
		"age": 36,
		"price": 1.50,
		"tags": ["go", "forms"],
		"checked": true,
		"gone": null
	}`))
	if err != nil {
		t.Fatalf("JSONObject: %v", err)
	}

	if diff := cmp.Diff([]string{"ada"}, fd.GetAll("name")); diff != "" {
		t.Fatalf("name mismatch (-want +got):\n%s", diff)
	}
	// Numbers keep their literal wire text.
	if diff := cmp.Diff([]string{"1.50"}, fd.GetAll("price")); diff != "" {
		t.Fatalf("price mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"36"}, fd.GetAll("age")); diff != "" {
		t.Fatalf("age mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"go", "forms"}, fd.GetAll("tags")); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"true"}, fd.GetAll("checked")); diff != "" {
		t.Fatalf("checked mismatch (-want +got):\n%s", diff)
	}
	// null members are absent keys, not empty values.
	if fd.Has("gone") {
		t.Fatal("null member should be absent")
	}
}

func TestJSONObjectAdapterRejectsNonObject(t *testing.T) {
	if _, err := goform.JSONObject([]byte(`[1, 2]`)); err == nil {
		t.Fatal("JSONObject([1,2]) error = nil, want decode error")
	}
}

func TestJSONObjectDrivesAForm(t *testing.T) {
	fd, err := goform.JSONObject([]byte(`{"name": "ada", "age": 36, "newsletter": true}`))
	if err != nil {
		t.Fatalf("JSONObject: %v", err)
	}
	form, err := signupSchema().NewForm(fd)
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	want := map[string]any{"name": "ada", "age": 36, "newsletter": true}
	if diff := cmp.Diff(want, form.Data()); diff != "" {
		t.Fatalf("Data() mismatch (-want +got):\n%s", diff)
	}
}
