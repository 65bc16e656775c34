package middleware

import "testing"

func TestIsPageLike(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{"GET", "/", true},
		{"GET", "/perfumes", true},
		{"GET", "/perfumes/amber-noir", true},
		{"POST", "/checkout", false},
		{"GET", "/api/perfumes", false},
		{"GET", "/assets/app.js", false},
		{"GET", "/assets/logo.PNG", false},
		{"GET", "/favicon.ico", false},
		{"GET", "/styles/main.css", false},
		{"DELETE", "/perfumes", false},
	}
	for _, tt := range tests {
		if got := isPageLike(tt.method, tt.path); got != tt.want {
			t.Errorf("isPageLike(%q, %q) = %v, want %v", tt.method, tt.path, got, tt.want)
		}
	}
}
