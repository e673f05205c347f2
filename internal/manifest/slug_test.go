package manifest

import (
	"strings"
	"testing"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my-app", "my-app"},
		{"My App", "my-app"},
		{"my_app", "my_app"},
		{"  spaced   out  ", "spaced-out"},
		{"Über Café", "uber-cafe"},
		{"projects/my-app", "my-app"},
		{"/abs/path/Blog/", "blog"},
		{".hidden", "hidden"},
		{"_private", "private"},
		{"hello!!world", "hello-world"},
		{"v1.2", "v1.2"},
		{"!!!", "app"},
		{"", "app"},
		{".", "app"},
		{"~tilde~app", "tilde-app"},
		{"app~v2", "app-v2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slug(tt.in); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlug_MaxLength(t *testing.T) {
	long := strings.Repeat("a", 300)
	if got := Slug(long); len(got) != maxNameLength {
		t.Errorf("len(Slug) = %d, want %d", len(got), maxNameLength)
	}

	// Truncation must not leave a trailing hyphen.
	edge := strings.Repeat("a", maxNameLength-1) + " b"
	if got := Slug(edge); strings.HasSuffix(got, "-") {
		t.Errorf("Slug ends with hyphen: %q", got)
	}
}
