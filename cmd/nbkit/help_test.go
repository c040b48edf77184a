package main

import (
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args shows main usage", nil, "Usage: nbkit <command>"},
		{"convert", []string{"convert"}, "Usage: nbkit convert"},
		{"split", []string{"split"}, "1.ipynb, 2.ipynb"},
		{"tile", []string{"tile"}, "Usage: nbkit tile"},
		{"doctor", []string{"doctor"}, "Usage: nbkit doctor"},
		{"version", []string{"version"}, "Usage: nbkit version"},
		{"help", []string{"help"}, "Usage: nbkit help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, stdout, _ := testEnv()

			runHelp(tt.args, env)
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("output = %q, want it to contain %q", stdout.String(), tt.want)
			}
		})
	}

	t.Run("unknown command goes to stderr", func(t *testing.T) {
		env, stdout, stderr := testEnv()

		runHelp([]string{"frobnicate"}, env)
		if stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", stdout.String())
		}
		if !strings.Contains(stderr.String(), "Unknown command: frobnicate") {
			t.Errorf("stderr = %q, missing unknown command message", stderr.String())
		}
	})
}
