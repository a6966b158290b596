package main

import (
	"context"
	"strings"
	"testing"
)

// TestCommandRejectsBadArguments 测试参数错误在开局前被拒绝
func TestCommandRejectsBadArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"non-numeric seed", []string{appName, "--seed", "abc", "simulate"}, "invalid --seed"},
		{"missing data directory", []string{appName, "--config-dir", t.TempDir(), "simulate"}, "load config"},
		{"missing level", []string{appName, "--level", "levels/nope.yaml", "simulate"}, "load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newCommand().Run(context.Background(), tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Run(%v) error = %v, want %q", tt.args, err, tt.wantErr)
			}
		})
	}
}
