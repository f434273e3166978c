//go:build !hellomacro

package demo

const greeting = "Hello from Zig CC!"
