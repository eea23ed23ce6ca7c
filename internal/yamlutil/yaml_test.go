package yamlutil

// Notes:
// - MaxInputSize is a package variable; the size test lowers it and restores
//   it, so it does not run in parallel with the other tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Theme string `yaml:"theme"`
	Width int    `yaml:"width"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Unknown fields rejected
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		dest    any
		wantErr error
		anyErr  bool
	}{
		{name: "valid", data: "theme: light\n", dest: &sample{}},
		{name: "unknown field", data: "colour: red\n", dest: &sample{}, anyErr: true},
		{name: "empty data", data: "", dest: &sample{}, wantErr: ErrNilData},
		{name: "nil destination", data: "theme: light\n", dest: nil, wantErr: ErrNilDestination},
		{name: "malformed", data: "theme: [unclosed\n", dest: &sample{}, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UnmarshalStrict([]byte(tt.data), tt.dest)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.HasPrefix(err.Error(), "yamlutil:") {
					t.Errorf("error %q should carry the yamlutil prefix", err)
				}
			default:
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestUnmarshalStrict_TooLarge(t *testing.T) {
	orig := MaxInputSize
	defer func() { MaxInputSize = orig }()
	MaxInputSize = 8

	err := UnmarshalStrict([]byte("theme: light\n"), &sample{})
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("error = %v, want ErrInputTooLarge", err)
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Encoding
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	out, err := Marshal(sample{Theme: "dark", Width: 640})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), "theme: dark") {
		t.Errorf("output %q missing theme", out)
	}
}
