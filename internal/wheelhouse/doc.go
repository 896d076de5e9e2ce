// Package wheelhouse manages the shared output directory for repaired
// wheels.
//
// The wheelhouse lives under the mounted project root, so artifacts
// collected inside the container are visible on the host as soon as the
// isolated run finishes. It is reset once per run and accumulates exactly
// one repaired wheel per successfully built variant.
package wheelhouse
