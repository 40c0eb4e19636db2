package document

import "testing"

func TestDerivedOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		suffix string
		want   string
	}{
		{"json default suffix", "flows.json", "", "flows_sorted.json"},
		{"explicit suffix", "flows.json", "_canonical", "flows_canonical.json"},
		{"nested path", "work/defs/flows.json", "", "work/defs/flows_sorted.json"},
		{"yaml becomes json", "flows.yaml", "", "flows_sorted.json"},
		{"yml becomes json", "flows.yml", "", "flows_sorted.json"},
		{"no extension", "flows", "", "flows_sorted"},
		{"dotfile-like", "v1.2/flows.json", "", "v1.2/flows_sorted.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DerivedOutputPath(tt.input, tt.suffix); got != tt.want {
				t.Errorf("DerivedOutputPath(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
			}
		})
	}
}
