// Package buildenv derives the deterministic build environment.
//
// A build must produce the same wheel regardless of which machine or run it
// happens on. The environment fixes the interpreter hash seed, the compiler
// cache policy, and the optimization flags, and excludes tests that reach
// for the network. Everything is computed from the immutable configuration;
// no process-global state is read or mutated.
package buildenv
