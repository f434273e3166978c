//go:build hellomacro && !dynamicmacro

package demo

const greeting = "Hello from Zig CC with Macro!"
