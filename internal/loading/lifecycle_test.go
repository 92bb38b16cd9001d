package loading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardStartsActive(t *testing.T) {
	g := NewGuard()
	assert.True(t, g.Active())
}

func TestGuardDispose(t *testing.T) {
	g := NewGuard()

	assert.True(t, g.Dispose(), "first dispose performs the teardown")
	assert.False(t, g.Active())
	assert.False(t, g.Dispose(), "second dispose is a no-op")
}
