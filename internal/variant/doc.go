// Package variant discovers the interpreter toolchains installed in the
// build container.
package variant
