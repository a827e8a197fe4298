// Package sysinfo collects best-effort host telemetry for the admin
// panel: CPU model, memory, distro, kernel and similar facts read from
// /proc, /sys and the environment. Every field degrades to "-" when the
// source is unreadable; collection never fails.
package sysinfo
