package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidHexColor is returned when a colour string is not in RRGGBB form
var ErrInvalidHexColor = errors.New("invalid hex colour")

// RuntimeConfig holds user overrides supplied on the command line.
// A colour is only applied when all three components are set.
type RuntimeConfig struct {
	ReferenceColorR *uint8
	ReferenceColorG *uint8
	ReferenceColorB *uint8

	TraceColorR *uint8
	TraceColorG *uint8
	TraceColorB *uint8

	SampleColorR *uint8
	SampleColorG *uint8
	SampleColorB *uint8

	NoLabels bool
}

// ParseHexColor parses "RRGGBB" or "#RRGGBB" into its components
func ParseHexColor(s string) (uint8, uint8, uint8, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidHexColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidHexColor, s)
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// SetReferenceColor applies a hex override for the reference trace
func (c *RuntimeConfig) SetReferenceColor(hex string) error {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	c.ReferenceColorR, c.ReferenceColorG, c.ReferenceColorB = &r, &g, &b
	return nil
}

// SetTraceColor applies a hex override for the reconstruction trace
func (c *RuntimeConfig) SetTraceColor(hex string) error {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	c.TraceColorR, c.TraceColorG, c.TraceColorB = &r, &g, &b
	return nil
}

// SetSampleColor applies a hex override for the sample markers
func (c *RuntimeConfig) SetSampleColor(hex string) error {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	c.SampleColorR, c.SampleColorG, c.SampleColorB = &r, &g, &b
	return nil
}

// GetReferenceColor returns the reference trace colour, or the default
func (c *RuntimeConfig) GetReferenceColor() (uint8, uint8, uint8) {
	if c == nil || c.ReferenceColorR == nil || c.ReferenceColorG == nil || c.ReferenceColorB == nil {
		return ReferenceColorR, ReferenceColorG, ReferenceColorB
	}
	return *c.ReferenceColorR, *c.ReferenceColorG, *c.ReferenceColorB
}

// GetTraceColor returns the reconstruction trace colour, or the default
func (c *RuntimeConfig) GetTraceColor() (uint8, uint8, uint8) {
	if c == nil || c.TraceColorR == nil || c.TraceColorG == nil || c.TraceColorB == nil {
		return TraceColorR, TraceColorG, TraceColorB
	}
	return *c.TraceColorR, *c.TraceColorG, *c.TraceColorB
}

// GetSampleColor returns the sample marker colour, or the default
func (c *RuntimeConfig) GetSampleColor() (uint8, uint8, uint8) {
	if c == nil || c.SampleColorR == nil || c.SampleColorG == nil || c.SampleColorB == nil {
		return SampleColorR, SampleColorG, SampleColorB
	}
	return *c.SampleColorR, *c.SampleColorG, *c.SampleColorB
}
