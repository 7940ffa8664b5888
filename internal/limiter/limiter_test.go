package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "zero", cfg: Config{}},
		{name: "limit and offset", cfg: Config{Limit: 2, Offset: 3}},
		{name: "tail with offset", cfg: Config{Tail: 2, Offset: 3}},
		{name: "negative limit", cfg: Config{Limit: -1}, wantErr: "--limit must be non-negative"},
		{name: "negative offset", cfg: Config{Offset: -1}, wantErr: "--offset must be non-negative"},
		{name: "negative tail", cfg: Config{Tail: -2}, wantErr: "--tail must be non-negative"},
		{name: "limit and tail", cfg: Config{Limit: 1, Tail: 1}, wantErr: "mutually exclusive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestApply(t *testing.T) {
	data := []string{"a", "b", "c", "d", "e"}
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{name: "inactive", cfg: Config{}, want: data},
		{name: "limit", cfg: Config{Limit: 2}, want: []string{"a", "b"}},
		{name: "offset", cfg: Config{Offset: 3}, want: []string{"d", "e"}},
		{name: "offset and limit", cfg: Config{Offset: 1, Limit: 2}, want: []string{"b", "c"}},
		{name: "limit past end", cfg: Config{Offset: 4, Limit: 10}, want: []string{"e"}},
		{name: "offset past end", cfg: Config{Offset: 9}, want: []string{}},
		{name: "tail", cfg: Config{Tail: 2}, want: []string{"d", "e"}},
		{name: "tail ignores offset", cfg: Config{Tail: 1, Offset: 3}, want: []string{"e"}},
		{name: "tail larger than input", cfg: Config{Tail: 10}, want: data},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.cfg, data))
		})
	}
}

func TestApplyEmpty(t *testing.T) {
	assert.Empty(t, Apply(Config{Limit: 3}, []int(nil)))
	assert.False(t, Config{}.IsActive())
	assert.True(t, Config{Tail: 1}.IsActive())
}
