package services

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Version is stamped at build time with -ldflags "-X ...services.Version=...".
var Version = "dev"

type HostSnapshot struct {
	ProcessRSSBytes   int64   `json:"process_rss_bytes"`
	ProcessCPULoad    float64 `json:"process_cpu_load"`
	SystemCPULoad     float64 `json:"system_cpu_load"`
	SystemMemoryTotal int64   `json:"system_memory_total_bytes"`
	SystemMemoryUsed  int64   `json:"system_memory_used_bytes"`
	DiskTotalBytes    int64   `json:"disk_total_bytes"`
	DiskUsedBytes     int64   `json:"disk_used_bytes"`
	Goroutines        int     `json:"goroutines"`
}

type Health struct {
	Status    string       `json:"status"`
	Database  string       `json:"database"`
	Version   string       `json:"version"`
	Timestamp time.Time    `json:"timestamp"`
	Host      HostSnapshot `json:"host"`
}

type SystemHealth struct {
	DB       *sqlx.DB
	DiskPath string
}

// Check pings the database and samples the host. A failed ping degrades the
// status instead of failing the call.
func (s SystemHealth) Check(ctx context.Context) Health {
	health := Health{
		Status:    "ok",
		Database:  "ok",
		Version:   Version,
		Timestamp: time.Now().UTC(),
		Host:      captureHost(s.DiskPath),
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		health.Status = "degraded"
		health.Database = "unreachable"
	}
	return health
}

func captureHost(diskPath string) HostSnapshot {
	snap := HostSnapshot{Goroutines: runtime.NumGoroutine()}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if rss, err := proc.MemoryInfo(); err == nil && rss != nil {
			snap.ProcessRSSBytes = int64(rss.RSS)
		}
		if cpuPerc, err := proc.CPUPercent(); err == nil {
			snap.ProcessCPULoad = cpuPerc / 100.0
		}
	}
	if memStat, err := mem.VirtualMemory(); err == nil {
		snap.SystemMemoryTotal = int64(memStat.Total)
		snap.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	if diskPath == "" {
		diskPath = "/"
	}
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, err = disk.Usage("/")
	}
	if err == nil && diskStat != nil {
		snap.DiskTotalBytes = int64(diskStat.Total)
		snap.DiskUsedBytes = int64(diskStat.Used)
	}
	if sysCPU, err := cpu.Percent(0, false); err == nil && len(sysCPU) > 0 {
		snap.SystemCPULoad = sysCPU[0] / 100.0
	}
	return snap
}
