package main

import "testing"

func TestMask(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "(not set)"},
		{"abc", "****"},
		{"ABCDEF0123456789", "****6789"},
	}
	for _, tt := range tests {
		if got := mask(tt.in); got != tt.want {
			t.Errorf("mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
