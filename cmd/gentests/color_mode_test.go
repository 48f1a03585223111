package main

import "testing"

func TestReadColorMode(t *testing.T) {
	cases := []struct {
		input   string
		want    colorMode
		wantErr bool
	}{
		{"", colorModeAuto, false},
		{"auto", colorModeAuto, false},
		{"AUTO", colorModeAuto, false},
		{"on", colorModeOn, false},
		{" On ", colorModeOn, false},
		{"off", colorModeOff, false},
		{"never", "", true},
	}
	for _, tc := range cases {
		got, err := readColorMode(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("readColorMode(%q): expected error, got %q", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("readColorMode(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("readColorMode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestShouldColorExplicitModes(t *testing.T) {
	if !shouldColor(colorModeOn) {
		t.Error("shouldColor(on) must be true")
	}
	if shouldColor(colorModeOff) {
		t.Error("shouldColor(off) must be false")
	}
}
