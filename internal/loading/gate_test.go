package loading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldShowSkeleton(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		enabled bool
		want    bool
	}{
		{
			name:    "stable loading with fallback enabled",
			state:   State{Loading: true, Stable: true},
			enabled: true,
			want:    true,
		},
		{
			name:    "fallback disabled",
			state:   State{Loading: true, Stable: true},
			enabled: false,
			want:    false,
		},
		{
			name:    "not loading",
			state:   State{Loading: false, Stable: true},
			enabled: true,
			want:    false,
		},
		{
			name:    "unstable",
			state:   State{Loading: true, Stable: false},
			enabled: true,
			want:    false,
		},
		{
			name:    "errored",
			state:   State{Loading: true, Stable: true, Err: "timeout"},
			enabled: true,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldShowSkeleton(tt.state, tt.enabled))
		})
	}
}

func TestStableLoading(t *testing.T) {
	assert.True(t, StableLoading(State{Loading: true, Stable: true}))
	assert.False(t, StableLoading(State{Loading: true, Stable: false}))
	assert.False(t, StableLoading(State{Loading: false, Stable: true}))
	assert.False(t, StableLoading(State{}))
}
