package gojson

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	eng "github.com/reoring/schemaful/internal/engine"
)

func collect(t *testing.T, src eng.TokenSource) []eng.Token {
	t.Helper()
	var out []eng.Token
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("next token: %v", err)
		}
		tok.Offset = 0
		out = append(out, tok)
	}
}

func TestTokens_KeysAndValues(t *testing.T) {
	got := collect(t, NewBytes([]byte(`{"a":[1,"x",{"b":null}],"c":true,"d":"k"}`)))
	want := []eng.Token{
		{Kind: eng.KindBeginObject},
		{Kind: eng.KindKey, String: "a"},
		{Kind: eng.KindBeginArray},
		{Kind: eng.KindNumber, Number: "1"},
		{Kind: eng.KindString, String: "x"},
		{Kind: eng.KindBeginObject},
		{Kind: eng.KindKey, String: "b"},
		{Kind: eng.KindNull},
		{Kind: eng.KindEndObject},
		{Kind: eng.KindEndArray},
		{Kind: eng.KindKey, String: "c"},
		{Kind: eng.KindBool, Bool: true},
		{Kind: eng.KindKey, String: "d"},
		{Kind: eng.KindString, String: "k"},
		{Kind: eng.KindEndObject},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens (-want +got):\n%s", diff)
	}
}

func TestTokens_NumberPrecisionKept(t *testing.T) {
	got := collect(t, NewBytes([]byte(`[12345678901234567890, 1.0]`)))
	if got[1].Number != "12345678901234567890" || got[2].Number != "1.0" {
		t.Fatalf("numbers not preserved: %+v", got)
	}
}

func TestTokens_MalformedInput(t *testing.T) {
	src := NewBytes([]byte(`[1,@]`))
	var err error
	for i := 0; i < 10 && err == nil; i++ {
		_, err = src.NextToken()
	}
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
