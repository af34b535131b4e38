// Package version reports build metadata for skillpack.
//
// Version, Commit and Date are injected at build time via -ldflags. When they
// are left at their defaults the values recorded by the Go toolchain in the
// binary's build info are used instead.
package version
