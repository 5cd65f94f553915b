// Package platform provides cross-platform filesystem operations: symbolic
// link resolution and creation, and permission checks. On Unix systems it uses
// native symlinks and mode bits directly. On Windows, where symlinks need
// developer mode, a link may be a plain copy with a .target sidecar recording
// the original target, and resolution honours that sidecar.
package platform
