package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "short flag with separate value",
			args:  []string{"-c", "conf.json", "-a", "localhost"},
			names: []string{"c", "config"},
			want:  []string{"-c", "conf.json"},
		},
		{
			name:  "double dash with equals",
			args:  []string{"--config=alt.json", "-a", "localhost"},
			names: []string{"c", "config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "names given with dashes are normalised",
			args:  []string{"-s", "key"},
			names: []string{"-s"},
			want:  []string{"-s", "key"},
		},
		{
			name:  "unknown flags and positionals ignored",
			args:  []string{"-x", "1", "--y=2", "positional"},
			names: []string{"c"},
			want:  []string{},
		},
		{
			name:  "flag without value at end",
			args:  []string{"-c"},
			names: []string{"c"},
			want:  []string{"-c"},
		},
		{
			name:  "flag followed by another flag",
			args:  []string{"-c", "-a", "x"},
			names: []string{"c"},
			want:  []string{"-c"},
		},
		{
			name:  "stops at terminator",
			args:  []string{"-a", ":8080", "--", "-a", ":9090"},
			names: []string{"a"},
			want:  []string{"-a", ":8080"},
		},
		{
			name:  "empty args",
			args:  nil,
			names: []string{"c"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.names...))
		})
	}
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "a.json", ConfigFile([]string{"-a", ":1", "-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigFile([]string{"-config=b.json"}))
	assert.Equal(t, "", ConfigFile([]string{"-a", ":1"}))
}
