package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextDefault(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input returns default", "\n", "USD"},
		{"value overrides default", "EUR\n", "EUR"},
		{"whitespace only returns default", "   \n", "USD"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := bufio.NewReader(strings.NewReader(tc.input))
			var out bytes.Buffer
			got, err := GetSimpleTextDefault(in, "Currency", "USD", &out)
			if err != nil || got != tc.want {
				t.Fatalf("got %q, err=%v, want %q", got, err, tc.want)
			}
			if !strings.Contains(out.String(), "[USD]") {
				t.Fatalf("prompt should show the default: %q", out.String())
			}
		})
	}
}

func TestGetSecret_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetSecret("Paste token", &out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetSecret_Value(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("s3cret"), nil
	}
	var out bytes.Buffer
	got, err := GetSecret("Paste token", &out)
	if err != nil || string(got) != "s3cret" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}
