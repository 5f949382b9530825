package registration

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Juan", "Juan"},
		{"  Juan   Pérez  ", "Juan Pérez"},
		{"<script>alert(1)</script>Juan", "alert(1)Juan"},
		{"Juan <b>el grande</b>", "Juan el grande"},
		{"a&b", "a&amp;b"},
		{`O'Brien`, "O&#39;Brien"},
	}

	for _, tt := range tests {
		if got := sanitize(tt.in); got != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
