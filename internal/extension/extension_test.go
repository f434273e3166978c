package extension_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/zigcc/zbuild/internal/extension"
)

func newGreeterModule(name, message string) Module {
	return Module{
		Name: name,
		Methods: []Method{
			{
				Name: "greet",
				Doc:  "Return a fixed message.",
				Func: func(_ ...any) (any, error) {
					return message, nil
				},
			},
		},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(newGreeterModule("demo", "hello")))

	module, err := registry.Lookup("demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", module.Name)

	method, ok := module.Method("greet")
	require.True(t, ok)
	assert.Equal(t, "Return a fixed message.", method.Doc)
}

func TestRegisterDuplicate(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(newGreeterModule("demo", "hello")))
	assert.Error(t, registry.Register(newGreeterModule("demo", "other")))
}

func TestRegisterEmptyName(t *testing.T) {
	registry := NewRegistry()
	assert.Error(t, registry.Register(Module{}))
}

func TestLookupNotFound(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Lookup("missing")
	assert.True(t, errors.Is(err, ErrModuleNotFound))
}

func TestInvoke(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newGreeterModule("demo", "hello")))

	cases := []struct {
		Name        string
		Module      string
		Method      string
		Expect      any
		ExpectedErr error
	}{
		{
			Name:   "KnownMethod",
			Module: "demo",
			Method: "greet",
			Expect: "hello",
		},
		{
			Name:        "UnknownModule",
			Module:      "missing",
			Method:      "greet",
			ExpectedErr: ErrModuleNotFound,
		},
		{
			Name:        "UnknownMethod",
			Module:      "demo",
			Method:      "missing",
			ExpectedErr: ErrMethodNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			result, err := registry.Invoke(tc.Module, tc.Method)

			if tc.ExpectedErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.ExpectedErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.Expect, result)
		})
	}
}

func TestInvokeIgnoresArguments(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newGreeterModule("demo", "hello")))

	result, err := registry.Invoke("demo", "greet", 1, "two", []string{"three"})
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestModulesSorted(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newGreeterModule("zeta", "z")))
	require.NoError(t, registry.Register(newGreeterModule("alpha", "a")))

	modules := registry.Modules()
	require.Len(t, modules, 2)
	assert.Equal(t, "alpha", modules[0].Name)
	assert.Equal(t, "zeta", modules[1].Name)
}
