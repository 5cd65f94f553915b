// Package cli wires the two binaries. Launch is the cl entry point: it takes
// no flags of its own and forwards every argument, so it does not go through
// cobra, which reserves the __complete argument. The cl-doctor Cobra command
// tree registers one command per file (check, plan, link, version).
package cli
