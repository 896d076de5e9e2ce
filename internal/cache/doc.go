// Package cache resolves the host-side caches shared with the build
// container.
//
// Both the pip cache and the ccache directory are bind-mounted into the
// container so repeated runs reuse downloaded packages and compiled objects.
// The caches are append-style and only ever written by one sequential run
// at a time, so no locking is needed here.
package cache
