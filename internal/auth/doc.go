// Package auth is the credential and authorization core of Hostwarden.
//
// It implements a deliberately small trust model:
//   - Two roles (admin, user), stored as a boolean flag, surfaced as a
//     typed enum at the API boundary.
//   - Argon2id password hashing with constant-time verification.
//   - Opaque session tokens bound to the device that requested them.
//     A token only authorizes when presented together with the same
//     device_id it was issued for.
//   - A pure fingerprint risk score that gates every flow before any
//     storage access, so likely-automated clients never reach the
//     database or trigger a credential comparison.
//
// All storage goes through one serialized SQLite connection behind one
// exclusive lock (see Store). There is no token expiry or revocation:
// re-authenticating from a device replaces that device's token in place,
// which is the only invalidation mechanism.
package auth
