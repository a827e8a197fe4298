package sysinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// unknown is the placeholder for any fact this host doesn't expose.
const unknown = "-"

// Info is a snapshot of host telemetry. String-typed throughout: the
// values are display facts for the panel, not metrics.
type Info struct {
	CPU         string `json:"cpu"`
	Temp        string `json:"temp"`
	Device      string `json:"device"`
	Distro      string `json:"distro"`
	Environment string `json:"environment"`
	GPU         string `json:"gpu"`
	Hostname    string `json:"hostname"`
	Kernel      string `json:"kernel"`
	Memory      string `json:"memory"`
}

// Collect gathers a best-effort snapshot of the host. Unreadable fields
// come back as "-" rather than errors.
func Collect() Info {
	return Info{
		CPU:         cpuModel(),
		Temp:        temperature(),
		Device:      deviceModel(),
		Distro:      distroName(),
		Environment: desktopEnvironment(),
		GPU:         gpuDriver(),
		Hostname:    hostname(),
		Kernel:      kernelRelease(),
		Memory:      memoryTotal(),
	}
}

// cpuModel returns the "model name" line from /proc/cpuinfo.
func cpuModel() string {
	return procField("/proc/cpuinfo", "model name")
}

// memoryTotal formats MemTotal from /proc/meminfo as mebibytes.
func memoryTotal() string {
	raw := procField("/proc/meminfo", "MemTotal")
	if raw == unknown {
		return unknown
	}

	// Value looks like "16295380 kB".
	fields := strings.Fields(raw)
	if len(fields) < 1 {
		return unknown
	}
	kb, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return unknown
	}
	return fmt.Sprintf("%d MB", kb/1024)
}

// distroName returns PRETTY_NAME from /etc/os-release.
func distroName() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return unknown
	}
	for _, line := range strings.Split(string(data), "\n") {
		if value, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(value, `"`)
		}
	}
	return unknown
}

// kernelRelease reads the running kernel version.
func kernelRelease() string {
	return fileLine("/proc/sys/kernel/osrelease")
}

// deviceModel reads the DMI product name (hardware model).
func deviceModel() string {
	return fileLine("/sys/devices/virtual/dmi/id/product_name")
}

// temperature reads the first thermal zone, reported in millidegrees C.
func temperature() string {
	raw := fileLine("/sys/class/thermal/thermal_zone0/temp")
	if raw == unknown {
		return unknown
	}
	milli, err := strconv.Atoi(raw)
	if err != nil {
		return unknown
	}
	return fmt.Sprintf("%d°C", milli/1000)
}

// desktopEnvironment reports the session's desktop environment, if any.
func desktopEnvironment() string {
	if v := os.Getenv("XDG_CURRENT_DESKTOP"); v != "" {
		return v
	}
	if v := os.Getenv("DESKTOP_SESSION"); v != "" {
		return v
	}
	return unknown
}

// gpuDriver reports the kernel driver bound to the first DRM card.
// A driver name (amdgpu, i915, nouveau) is the most portable GPU fact
// available without shelling out to lspci.
func gpuDriver() string {
	cards, err := filepath.Glob("/sys/class/drm/card[0-9]/device/uevent")
	if err != nil || len(cards) == 0 {
		return unknown
	}
	data, err := os.ReadFile(cards[0])
	if err != nil {
		return unknown
	}
	for _, line := range strings.Split(string(data), "\n") {
		if value, ok := strings.CutPrefix(line, "DRIVER="); ok {
			return value
		}
	}
	return unknown
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return unknown
	}
	return name
}

// procField returns the value after the first "key : value" line in a
// /proc table file.
func procField(path, key string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return unknown
	}
	for _, line := range strings.Split(string(data), "\n") {
		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if strings.TrimSpace(name) == key {
			return strings.TrimSpace(value)
		}
	}
	return unknown
}

// fileLine returns the first line of a file, trimmed.
func fileLine(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return unknown
	}
	line, _, _ := strings.Cut(string(data), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return unknown
	}
	return line
}
