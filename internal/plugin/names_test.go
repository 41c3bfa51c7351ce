package plugin

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestPackageName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"highlight", "gitbook-plugin-highlight"},
		{"gitbook-plugin-highlight", "gitbook-plugin-highlight"},
		{"my-gitbook-plugin-x", "gitbook-plugin-my-gitbook-plugin-x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := PackageName(tt.in); got != tt.want {
				t.Errorf("PackageName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gitbook-plugin-highlight", "highlight"},
		{"highlight", "highlight"},
		// Removal is substring based, not anchored at the start.
		{"x-gitbook-plugin-y", "x-y"},
		// Only the first occurrence goes.
		{"gitbook-plugin-gitbook-plugin-z", "gitbook-plugin-z"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Name(tt.in); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsPluginPackage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", false},
		{"plugin package", "gitbook-plugin-highlight", true},
		{"bare prefix", "gitbook-plugin-", true},
		{"plain package", "lodash", false},
		{"prefix not at start", "x-gitbook-plugin-y", false},
		{"plugin name without prefix", "highlight", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPluginPackage(tt.in); got != tt.want {
				t.Errorf("IsPluginPackage(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

var pluginNames = rapid.StringMatching(`[a-z0-9][a-z0-9._-]{0,30}`).Filter(func(s string) bool {
	return !strings.Contains(s, Prefix)
})

func TestNameOfPackageNameRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := pluginNames.Draw(t, "name")
		if got := Name(PackageName(n)); got != n {
			t.Fatalf("Name(PackageName(%q)) = %q", n, got)
		}
	})
}

func TestPackageNameOfNameRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := Prefix + pluginNames.Draw(t, "name")
		if got := PackageName(Name(p)); got != p {
			t.Fatalf("PackageName(Name(%q)) = %q", p, got)
		}
		if !IsPluginPackage(p) {
			t.Fatalf("IsPluginPackage(%q) = false", p)
		}
	})
}
