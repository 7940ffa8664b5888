package settings

import (
	"testing"
)

func TestNewCliParams(t *testing.T) {
	tests := []struct {
		name string
		want *Run
	}{
		{
			name: "default CLI params",
			want: &Run{
				NoColor:     false,
				Interactive: false,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCliParams()
			if *got != *tt.want {
				t.Errorf("NewCliParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestVersionInformationDefaults(t *testing.T) {
	if VersionInformation.BuildVersion == "" {
		t.Error("BuildVersion should have a default")
	}
	if CliBinaryName != "grdfind" {
		t.Errorf("CliBinaryName = %q", CliBinaryName)
	}
}
