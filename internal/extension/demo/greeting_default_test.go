//go:build !hellomacro

package demo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zigcc/zbuild/internal/extension/demo"
)

func TestWorldDefaultGreeting(t *testing.T) {
	assert.Equal(t, "Hello from Zig CC!", demo.World())
}
