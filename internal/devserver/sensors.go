package devserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/five82/deskremote/internal/remote"
)

const defaultPowerSupplyDir = "/sys/class/power_supply"

// SystemSensors reads CPU, load and memory through gopsutil and the battery
// from the Linux power_supply class. Machines without a battery (or
// without sysfs) report HasBattery false.
type SystemSensors struct {
	PowerSupplyDir string // empty uses /sys/class/power_supply
}

func (s SystemSensors) Read(ctx context.Context) (remote.SystemInfo, error) {
	var info remote.SystemInfo

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return info, fmt.Errorf("read cpu: %w", err)
	}
	if len(percents) > 0 {
		info.CPU.CurrentLoad = percents[0]
	}

	// Load average is unavailable on some platforms; leave it zero.
	if avg, err := load.AvgWithContext(ctx); err == nil {
		info.CPU.AvgLoad = avg.Load1
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return info, fmt.Errorf("read memory: %w", err)
	}
	info.Mem = remote.MemInfo{Total: vm.Total, Free: vm.Available, Used: vm.Used}

	dir := s.PowerSupplyDir
	if dir == "" {
		dir = defaultPowerSupplyDir
	}
	info.Battery = readBattery(dir)
	return info, nil
}

// readBattery reports the first BAT* supply under dir.
func readBattery(dir string) remote.BatteryInfo {
	matches, err := filepath.Glob(filepath.Join(dir, "BAT*"))
	if err != nil || len(matches) == 0 {
		return remote.BatteryInfo{}
	}
	supply := matches[0]

	raw, err := os.ReadFile(filepath.Join(supply, "capacity"))
	if err != nil {
		return remote.BatteryInfo{}
	}
	percent, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return remote.BatteryInfo{}
	}

	charging := false
	if status, err := os.ReadFile(filepath.Join(supply, "status")); err == nil {
		switch strings.TrimSpace(string(status)) {
		case "Charging", "Full":
			charging = true
		}
	}

	return remote.BatteryInfo{HasBattery: true, Percent: percent, Charging: charging}
}
