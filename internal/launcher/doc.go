// Package launcher locates the installation the running cl binary belongs to
// and hands control to the Python client installed there.
//
// The sequence is fixed: resolve the invoked path through any chain of
// symbolic links, take the directory two levels above the resolved file as the
// installation root, export that root, and run the entrypoint with every
// original argument.
package launcher
