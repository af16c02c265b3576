package config

import (
	"errors"
	"testing"
)

// TestParseHexColor_ValidInputs verifies that ParseHexColor correctly parses
// various valid hex colour formats, catching case sensitivity issues,
// prefix handling, and byte ordering bugs.
func TestParseHexColor_ValidInputs(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		wantR uint8
		wantG uint8
		wantB uint8
	}{
		{
			name:  "FF0000 (uppercase red, no hash)",
			input: "FF0000",
			wantR: 255,
		},
		{
			name:  "#ff0000 (lowercase red, with hash)",
			input: "#ff0000",
			wantR: 255,
		},
		{
			name:  "Ff00fF (mixed case magenta)",
			input: "Ff00fF",
			wantR: 255,
			wantB: 255,
		},
		{
			name:  "#6aa0ff (reference trace blue)",
			input: "#6aa0ff",
			wantR: ReferenceColorR,
			wantG: ReferenceColorG,
			wantB: ReferenceColorB,
		},
		{
			name:  "ffd166 (sample marker yellow)",
			input: "ffd166",
			wantR: SampleColorR,
			wantG: SampleColorG,
			wantB: SampleColorB,
		},
		{
			name:  "#ff7a6a (reconstruction red)",
			input: "#ff7a6a",
			wantR: TraceColorR,
			wantG: TraceColorG,
			wantB: TraceColorB,
		},
		{
			name:  "000000 (black)",
			input: "000000",
		},
		{
			name:  "010203 (low values, byte order)",
			input: "010203",
			wantR: 1,
			wantG: 2,
			wantB: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b, err := ParseHexColor(tc.input)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) returned error: %v", tc.input, err)
			}

			if r != tc.wantR || g != tc.wantG || b != tc.wantB {
				t.Errorf("ParseHexColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tc.input, r, g, b, tc.wantR, tc.wantG, tc.wantB)
			}
		})
	}
}

// TestParseHexColor_InvalidInputs verifies that ParseHexColor rejects
// malformed input with ErrInvalidHexColor.
func TestParseHexColor_InvalidInputs(t *testing.T) {
	inputs := []string{
		"FFF",
		"#FFF",
		"FFFFFFF",
		"GGGGGG",
		"FF00GG",
		"",
		"#",
		"FF 000",
		"FF#000",
		"##FF0000",
		"FF0000\n",
		"+FFFFF",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, _, _, err := ParseHexColor(input)
			if err == nil {
				t.Fatalf("ParseHexColor(%q) expected error, got nil", input)
			}
			if !errors.Is(err, ErrInvalidHexColor) {
				t.Errorf("ParseHexColor(%q) error = %v, want ErrInvalidHexColor", input, err)
			}
		})
	}
}

// TestRuntimeConfig_Defaults verifies that Get*Color() return defaults when
// overrides are nil or only partially set.
func TestRuntimeConfig_Defaults(t *testing.T) {
	testCases := []struct {
		name   string
		config *RuntimeConfig
	}{
		{name: "Nil config", config: nil},
		{name: "Empty config", config: &RuntimeConfig{}},
		{
			name: "Partial overrides",
			config: &RuntimeConfig{
				ReferenceColorR: ptrUint8(1),
				TraceColorG:     ptrUint8(2),
				SampleColorB:    ptrUint8(3),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if r, g, b := tc.config.GetReferenceColor(); r != ReferenceColorR || g != ReferenceColorG || b != ReferenceColorB {
				t.Errorf("GetReferenceColor() = (%d, %d, %d), want defaults", r, g, b)
			}
			if r, g, b := tc.config.GetTraceColor(); r != TraceColorR || g != TraceColorG || b != TraceColorB {
				t.Errorf("GetTraceColor() = (%d, %d, %d), want defaults", r, g, b)
			}
			if r, g, b := tc.config.GetSampleColor(); r != SampleColorR || g != SampleColorG || b != SampleColorB {
				t.Errorf("GetSampleColor() = (%d, %d, %d), want defaults", r, g, b)
			}
		})
	}
}

func TestRuntimeConfig_SetColors(t *testing.T) {
	c := &RuntimeConfig{}

	if err := c.SetReferenceColor("#102030"); err != nil {
		t.Fatalf("SetReferenceColor: %v", err)
	}
	if err := c.SetTraceColor("405060"); err != nil {
		t.Fatalf("SetTraceColor: %v", err)
	}
	if err := c.SetSampleColor("#708090"); err != nil {
		t.Fatalf("SetSampleColor: %v", err)
	}

	if r, g, b := c.GetReferenceColor(); r != 0x10 || g != 0x20 || b != 0x30 {
		t.Errorf("GetReferenceColor() = (%d, %d, %d)", r, g, b)
	}
	if r, g, b := c.GetTraceColor(); r != 0x40 || g != 0x50 || b != 0x60 {
		t.Errorf("GetTraceColor() = (%d, %d, %d)", r, g, b)
	}
	if r, g, b := c.GetSampleColor(); r != 0x70 || g != 0x80 || b != 0x90 {
		t.Errorf("GetSampleColor() = (%d, %d, %d)", r, g, b)
	}

	// A failed override leaves the previous colour in place
	if err := c.SetTraceColor("nope"); err == nil {
		t.Fatal("SetTraceColor(\"nope\") expected error")
	}
	if r, _, _ := c.GetTraceColor(); r != 0x40 {
		t.Errorf("trace colour changed after failed override: R=%d", r)
	}
}

func ptrUint8(v uint8) *uint8 {
	return &v
}
