package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	signals := Signals{
		UserAgent:        "Mozilla/5.0 (X11; Linux x86_64) Firefox/126.0",
		AcceptLanguage:   "en-US,en;q=0.9",
		ScreenResolution: "1920x1080",
		Timezone:         "Europe/Berlin",
		Platform:         "Linux",
	}

	first := Generate(signals)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Generate(signals))
	}
}

func TestGenerate_Length(t *testing.T) {
	id := Generate(Signals{UserAgent: "UA1"})
	require.Len(t, id, identityLength)

	// Hex digest prefix only.
	for _, c := range id {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'),
			"unexpected character %q in identity", c)
	}
}

func TestGenerate_SensitiveToEachSignal(t *testing.T) {
	base := Signals{
		UserAgent:        "Mozilla/5.0",
		AcceptLanguage:   "en-US",
		ScreenResolution: "1920x1080",
		Timezone:         "UTC",
		Platform:         "MacIntel",
	}
	baseID := Generate(base)

	tests := []struct {
		name   string
		mutate func(s Signals) Signals
	}{
		{"user agent", func(s Signals) Signals { s.UserAgent = "curl/8.0"; return s }},
		{"accept language", func(s Signals) Signals { s.AcceptLanguage = "de-DE"; return s }},
		{"screen resolution", func(s Signals) Signals { s.ScreenResolution = "1280x720"; return s }},
		{"timezone", func(s Signals) Signals { s.Timezone = "Asia/Tokyo"; return s }},
		{"platform", func(s Signals) Signals { s.Platform = "Win32"; return s }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, baseID, Generate(tt.mutate(base)))
		})
	}
}

func TestGenerate_EmptySignals(t *testing.T) {
	// No headers at all still yields a stable identity; all such clients
	// intentionally collide into the same one.
	assert.Equal(t, Generate(Signals{}), Generate(Signals{}))
	assert.Len(t, Generate(Signals{}), identityLength)
}

func TestGenerate_FieldOrderMatters(t *testing.T) {
	// Swapping values between fields must not produce the same identity:
	// the separator keeps field boundaries unambiguous.
	a := Generate(Signals{UserAgent: "x", AcceptLanguage: "y"})
	b := Generate(Signals{UserAgent: "y", AcceptLanguage: "x"})
	assert.NotEqual(t, a, b)
}
