// Package command runs external build tools behind an injectable interface.
package command
