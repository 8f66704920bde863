package service

import (
	"os"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/denysvitali/dirscope-runtime/internal/models"
)

// SystemStats returns resource usage of this process and the volume holding
// the resolved home directory (or / when it cannot be resolved)
func (s *Service) SystemStats() models.SystemStats {
	var stats models.SystemStats

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		s.logger.Warnf("Failed to get process info: %v", err)
	} else {
		if cpuPercent, err := proc.CPUPercent(); err != nil {
			s.logger.Warnf("Failed to get CPU percent: %v", err)
		} else {
			stats.CPUPercent = cpuPercent
		}

		if memInfo, err := proc.MemoryInfo(); err != nil {
			s.logger.Warnf("Failed to get memory info: %v", err)
		} else {
			stats.Memory.RSS = memInfo.RSS
			stats.Memory.VMS = memInfo.VMS
		}

		if memPercent, err := proc.MemoryPercent(); err != nil {
			s.logger.Warnf("Failed to get memory percent: %v", err)
		} else {
			stats.Memory.Percent = memPercent
		}
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		s.logger.Warnf("Failed to get virtual memory: %v", err)
	} else {
		stats.Memory.Total = vm.Total
		stats.Memory.Used = vm.Used
		stats.Memory.SystemPercent = vm.UsedPercent
	}

	volume, err := s.resolver.Resolve()
	if err != nil {
		volume = "/"
	}
	if usage, err := disk.Usage(volume); err != nil {
		s.logger.Warnf("Failed to get disk usage for %s: %v", volume, err)
	} else {
		stats.Disk = models.DiskStats{
			Total:   usage.Total,
			Used:    usage.Used,
			Free:    usage.Free,
			Percent: usage.UsedPercent,
		}
	}

	return stats
}
