// Provides the filesystem contract shared by host and container.
//
// Host-side paths follow XDG conventions via the xdg package. Container-side
// paths are fixed constants: the host launcher mounts the project tree and
// caches at these locations and the variant build loop finds them there.
package paths
