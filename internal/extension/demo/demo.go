/*
Package demo is the demo extension module. It exposes a single method, world, that returns a
greeting fixed at build time by the hellomacro and dynamicmacro build tags. Importing the package
is sufficient to make the module invokable under the name "demo".
*/
package demo

import "github.com/zigcc/zbuild/internal/extension"

// Name is the stable name the module is registered under.
const Name = "demo"

func init() {
	extension.MustRegister(Module())
}

// World returns the greeting compiled into this build. Arguments are accepted and ignored to
// match the calling convention of a host embedding the module; it never fails and is safe for
// concurrent use.
func World(_ ...any) string {
	return greeting
}

// Module returns the module definition with its method table.
func Module() extension.Module {
	return extension.Module{
		Name: Name,
		Methods: []extension.Method{
			{
				Name: "world",
				Doc:  "Return a greeting.",
				Func: func(args ...any) (any, error) {
					return World(args...), nil
				},
			},
		},
	}
}
