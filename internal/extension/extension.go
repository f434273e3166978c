/*
Package extension implements a registry of native extension modules. A module is a stable name
paired with a method table; methods are invoked by name with arbitrary arguments, mirroring the
method table and module definition of a conventional native extension entry point.
*/
package extension

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ErrModuleNotFound indicates a module could not be found for the given name.
var ErrModuleNotFound = errors.New("module not found")

// ErrMethodNotFound indicates a module has no method for the given name.
var ErrMethodNotFound = errors.New("method not found")

// Func is the calling convention for extension methods. Implementations are free to ignore
// args entirely.
type Func func(args ...any) (any, error)

// Method is a single entry in a module's method table.
type Method struct {
	// Name is the name the method is invokable under.
	Name string

	// Doc is a short human readable description served alongside the method.
	Doc string

	// Func is the callable backing the method.
	Func Func
}

// Module is a loadable unit exposing a method table under a stable name.
type Module struct {
	// Name is the stable module name callers use to address the module.
	Name string

	// Methods is the module's method table in registration order.
	Methods []Method
}

// Method returns the method registered under name and a presence flag.
func (m Module) Method(name string) (Method, bool) {
	for _, method := range m.Methods {
		if method.Name == name {
			return method, true
		}
	}

	return Method{}, false
}

// Registry is a collection of modules addressable by name. The zero value is not usable;
// construct instances with NewRegistry. Registries are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]Module{}}
}

// Register adds module to the registry. Registering a duplicate name is an error because
// consumers address modules purely by name.
func (r *Registry) Register(module Module) error {
	if module.Name == "" {
		return errors.New("module name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.modules[module.Name]; ok {
		return fmt.Errorf("module already registered: %v", module.Name)
	}

	r.modules[module.Name] = module

	return nil
}

// Lookup returns the module registered under name. If no module is registered it returns
// ErrModuleNotFound.
func (r *Registry) Lookup(name string) (Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	module, ok := r.modules[name]
	if !ok {
		return Module{}, errors.Wrap(ErrModuleNotFound, name)
	}

	return module, nil
}

// Modules returns all registered modules sorted by name.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modules := make([]Module, 0, len(r.modules))
	for _, module := range r.modules {
		modules = append(modules, module)
	}

	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })

	return modules
}

// Invoke resolves method on module and calls it with args. Resolution failures are reported
// with ErrModuleNotFound or ErrMethodNotFound; anything else comes from the method itself.
func (r *Registry) Invoke(module, method string, args ...any) (any, error) {
	m, err := r.Lookup(module)
	if err != nil {
		return nil, err
	}

	fn, ok := m.Method(method)
	if !ok {
		return nil, errors.Wrapf(ErrMethodNotFound, "%v.%v", module, method)
	}

	return fn.Func(args...)
}

// defaultRegistry backs the package level registration functions used by modules that register
// themselves at load time.
var defaultRegistry = NewRegistry()

// Default returns the process wide registry modules register with at load time.
func Default() *Registry {
	return defaultRegistry
}

// MustRegister registers module with the default registry and panics on failure. It is intended
// for use from module package init functions where a registration failure is a programming error.
func MustRegister(module Module) {
	if err := defaultRegistry.Register(module); err != nil {
		panic(err)
	}
}
