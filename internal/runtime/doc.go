// Package runtime selects the Python interpreter for an installation root,
// builds the environment and argument vector the downstream client runs with,
// and hands control to it. On Unix the hand-off replaces the current process
// image; on Windows it spawns the interpreter, waits, and reports its exit code.
package runtime
