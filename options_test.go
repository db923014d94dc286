package schemaful_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	schemaful "github.com/reoring/schemaful"
	"github.com/reoring/schemaful/i18n"
)

func TestProject_DuplicateKey_Error(t *testing.T) {
	s := mustSchema(t, `{"type":"array","items":{"type":"object","properties":{"a":{"type":"integer"}}}}`)
	opt := schemaful.ProjectOpt{Strictness: schemaful.Strictness{OnDuplicateKey: schemaful.Error}}
	_, err := schemaful.ProjectString(`[{"a":1,"a":2}]`, s, opt)
	if err == nil {
		t.Fatalf("expected error for duplicate key")
	}
	iss := schemaful.ToIssues(err)
	if len(iss) != 1 || iss[0].Code != schemaful.CodeDuplicateKey || iss[0].Path != "/0/a" {
		t.Fatalf("expected duplicate_key at /0/a, got: %v", iss)
	}
}

func TestProject_DuplicateKey_LastWins(t *testing.T) {
	s := mustSchema(t, `{"type":"object","properties":{"a":{"type":"integer"}}}`)
	var warned []string
	opt := schemaful.ProjectOpt{
		Strictness: schemaful.Strictness{OnDuplicateKey: schemaful.Warn},
		Logger: schemaful.LoggerFunc(func(format string, args ...any) {
			if strings.Contains(format, " at ") {
				warned = append(warned, format)
			}
		}),
	}
	got, err := schemaful.ProjectString(`{"a":1,"a":2}`, s, opt)
	if err != nil {
		t.Fatalf("warn mode must not fail: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"a": json.Number("2")}, got); diff != "" {
		t.Fatalf("projection (-want +got):\n%s", diff)
	}
	if len(warned) != 1 {
		t.Fatalf("expected one duplicate warning, got %v", warned)
	}
}

func TestProject_DuplicateKey_LastWinsUnderAdditionalProperties(t *testing.T) {
	s := mustSchema(t, `{"type":"object","additionalProperties":{"type":"array","items":{"$ref":"#/definitions/Model"}},`+modelDefinitions+`}`)
	input := `{"k":[{"value":1}],"k":[{"value":2},{"value":3}]}`
	got, err := schemaful.ProjectString(input, s)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	want := map[string]any{"k": []any{
		map[string]any{"value": json.Number("2")},
		map[string]any{"value": json.Number("3")},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("projection (-want +got):\n%s", diff)
	}
	decoded, err := schemaful.Decode([]byte(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Elements carry only declared members, so the projection must agree
	// with the copy a plain decode keeps.
	if diff := cmp.Diff(decoded.(map[string]any)["k"], want["k"]); diff != "" {
		t.Fatalf("projection and decode disagree on the winning copy (-decode +want):\n%s", diff)
	}
}

func TestProject_MaxDepth(t *testing.T) {
	s := mustSchema(t, `{"type":"object"}`)
	_, err := schemaful.ProjectString(`{"a":{"b":{"c":1}}}`, s, schemaful.ProjectOpt{MaxDepth: 2})
	iss := schemaful.ToIssues(err)
	if len(iss) == 0 || iss[0].Path != "/a/b" {
		t.Fatalf("expected path=/a/b for max depth, got: %v", iss)
	}
}

func TestProject_MaxBytes(t *testing.T) {
	s := mustSchema(t, `{"type":"object"}`)
	data := append([]byte("{}"), bytes.Repeat([]byte(" "), 64)...)
	opt := schemaful.ProjectOpt{MaxBytes: 8}
	for name, run := range map[string]func() error{
		"bytes":  func() error { _, err := schemaful.Project(data, s, opt); return err },
		"reader": func() error { _, err := schemaful.ProjectReader(bytes.NewReader(data), s, opt); return err },
	} {
		t.Run(name, func(t *testing.T) {
			iss := schemaful.ToIssues(run())
			if len(iss) == 0 || iss[0].Code != schemaful.CodeTruncated {
				t.Fatalf("expected truncated, got %v", iss)
			}
		})
	}
	if _, err := schemaful.Project([]byte(`{}`), s, opt); err != nil {
		t.Fatalf("input within limit: %v", err)
	}
}

func TestProject_NumberModes(t *testing.T) {
	s := mustSchema(t, `{"type":"array","items":{"type":"number"}}`)
	cases := []struct {
		mode schemaful.NumberMode
		want []any
	}{
		{schemaful.NumberJSONNumber, []any{json.Number("1"), json.Number("2.5"), json.Number("12345678901234567890")}},
		{schemaful.NumberFloat64, []any{float64(1), 2.5, 12345678901234567890.0}},
		{schemaful.NumberAuto, []any{int64(1), 2.5, 12345678901234567890.0}},
	}
	for _, c := range cases {
		got, err := schemaful.ProjectString(`[1,2.5,12345678901234567890]`, s, schemaful.ProjectOpt{Numbers: c.mode})
		if err != nil {
			t.Fatalf("mode %d: %v", c.mode, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("mode %d (-want +got):\n%s", c.mode, diff)
		}
	}
}

func TestJSONDrivers(t *testing.T) {
	s := mustSchema(t, nestedModelSchema)
	input := []byte(`{"l1_list":[{"l2":{"s":"x","i":3,"z":null}}],"l1_dict":{"l2":{}},"q":[1]}`)
	var results []any
	for _, name := range []string{"go-json", "encoding/json"} {
		d, ok := schemaful.JSONDriverByName(name)
		if !ok {
			t.Fatalf("driver %s not registered", name)
		}
		if d.Name() != name {
			t.Fatalf("driver name %q != %q", d.Name(), name)
		}
		got, err := schemaful.Project(input, s, schemaful.ProjectOpt{Driver: d})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		results = append(results, got)
	}
	if diff := cmp.Diff(results[0], results[1]); diff != "" {
		t.Fatalf("drivers disagree (-go-json +encoding/json):\n%s", diff)
	}
	if _, ok := schemaful.JSONDriverByName("simdjson"); ok {
		t.Fatalf("unknown driver must not resolve")
	}
}

func TestSetJSONDriver(t *testing.T) {
	t.Cleanup(schemaful.UseDefaultJSONDriver)
	std, _ := schemaful.JSONDriverByName("encoding/json")
	schemaful.SetJSONDriver(std)
	if got := schemaful.CurrentJSONDriver().Name(); got != "encoding/json" {
		t.Fatalf("expected encoding/json, got %s", got)
	}
	schemaful.SetJSONDriver(nil)
	if got := schemaful.CurrentJSONDriver().Name(); got != "encoding/json" {
		t.Fatalf("nil driver must be ignored, got %s", got)
	}
	schemaful.UseDefaultJSONDriver()
	if got := schemaful.CurrentJSONDriver().Name(); got != "go-json" {
		t.Fatalf("expected go-json, got %s", got)
	}
}

func TestToIssues(t *testing.T) {
	mismatch := func() error {
		_, err := schemaful.ProjectString(`{"n":[1]}`, mustSchema(t, `{"type":"object","properties":{"n":{"type":"string"}}}`))
		return err
	}
	unresolved := func() error {
		_, err := schemaful.ProjectString(`{"n":{}}`, mustSchema(t, `{"type":"object","properties":{"n":{"$ref":"#/definitions/X"}}}`))
		return err
	}
	cases := []struct {
		name string
		err  error
		code string
		path string
	}{
		{"type mismatch", mismatch(), schemaful.CodeInvalidType, "/n"},
		{"schema error", unresolved(), schemaful.CodeSchemaError, "/n"},
		{"parse error", errors.New("boom"), schemaful.CodeParseError, "/"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			iss := schemaful.ToIssues(c.err)
			if len(iss) != 1 || iss[0].Code != c.code || iss[0].Path != c.path {
				t.Fatalf("unexpected issues: %#v", iss)
			}
			if iss[0].Cause == nil {
				t.Fatalf("cause must be kept")
			}
		})
	}
	if schemaful.ToIssues(nil) != nil {
		t.Fatalf("nil error must map to nil issues")
	}
	iss := schemaful.ToIssues(mismatch())
	if iss[0].Params["expected"] != "scalar" || iss[0].Params["got"] != "array" {
		t.Fatalf("unexpected params: %v", iss[0].Params)
	}
}

func TestIssues_ErrorAndLocalize(t *testing.T) {
	iss := schemaful.Issues{
		{Code: schemaful.CodeInvalidType, Path: "/a"},
		{Code: schemaful.CodeSchemaError, Path: "/b"},
		{Code: schemaful.CodeParseError, Path: "/c"},
		{Code: schemaful.CodeTruncated, Path: "/"},
	}
	if got := iss.Error(); got != "invalid_type at /a; schema_error at /b; parse_error at /c; ... (total 4)" {
		t.Fatalf("unexpected summary: %s", got)
	}
	back, ok := schemaful.AsIssues(iss)
	if !ok || len(back) != 4 {
		t.Fatalf("AsIssues failed: %v", back)
	}

	i18n.SetLanguage("ja")
	t.Cleanup(func() { i18n.SetLanguage("en") })
	ja := iss.Localize(nil)
	if ja[0].Message != "型が不正です" {
		t.Fatalf("expected japanese message, got %q", ja[0].Message)
	}
	if iss[0].Message != "" {
		t.Fatalf("Localize must not modify the receiver")
	}
	en := iss.Localize(i18n.New("en"))
	if en[3].Message != "input too large" {
		t.Fatalf("unexpected message: %q", en[3].Message)
	}
}
