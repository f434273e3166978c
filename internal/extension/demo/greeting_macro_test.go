//go:build hellomacro && !dynamicmacro

package demo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zigcc/zbuild/internal/extension/demo"
)

func TestWorldMacroGreeting(t *testing.T) {
	assert.Equal(t, "Hello from Zig CC with Macro!", demo.World())
}
