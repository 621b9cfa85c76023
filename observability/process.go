package observability

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats is a point-in-time view of the serving process.
type ProcessStats struct {
	Pid        int32     `json:"pid"`
	Status     PidStatus `json:"status"`
	RSSBytes   uint64    `json:"rss_bytes"`
	CPUPercent float64   `json:"cpu_percent"`
	Goroutines int       `json:"goroutines"`
}

// SelfStats retrieves memory, CPU and OS status for the current process.
func SelfStats() (ProcessStats, error) {
	pid := int32(os.Getpid())
	p, err := process.NewProcess(pid)
	if err != nil {
		return ProcessStats{}, err
	}

	memInfo, err := p.MemoryInfo()
	if err != nil {
		return ProcessStats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return ProcessStats{}, err
	}
	status, err := p.Status()
	if err != nil {
		return ProcessStats{}, err
	}
	return ProcessStats{
		Pid:        pid,
		Status:     ToStatus(status),
		RSSBytes:   memInfo.RSS,
		CPUPercent: cpuPercent,
		Goroutines: runtime.NumGoroutine(),
	}, nil
}
