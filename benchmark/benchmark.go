// benchmark.go
// A reusable benchmarking module for metapep_go
// Measures execution time and memory usage for any wrapped function

package benchmark

import (
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
)

const mb = 1024.0 * 1024.0

// Run wraps any function to measure its runtime and memory usage.
func Run(logger *log.Logger, label string, f func()) {
	logger = logger.WithPrefix("benchmark")
	logger.Info("Running", "label", label)

	// Snapshot environment info
	host, _ := os.Hostname()
	logger.Info("Environment",
		"timestamp", time.Now().Format(time.RFC1123),
		"hostname", host,
		"go", runtime.Version(),
		"os_arch", runtime.GOOS+"/"+runtime.GOARCH,
		"cpus", runtime.NumCPU(),
	)

	// Prepare for benchmark
	runtime.GC()
	var memStart, memEnd runtime.MemStats
	runtime.ReadMemStats(&memStart)
	start := time.Now()

	// Run benchmarked function
	f()

	elapsed := time.Since(start)
	runtime.ReadMemStats(&memEnd)

	// Report resource usage
	logger.Info("Finished",
		"elapsed", elapsed,
		"total_allocated_mb", float64(memEnd.TotalAlloc-memStart.TotalAlloc)/mb,
		"heap_mb", float64(memEnd.HeapAlloc)/mb,
		"peak_sys_mb", float64(memEnd.Sys)/mb,
		"gc_cycles", memEnd.NumGC-memStart.NumGC,
	)
}

// LogMemory logs the current heap size alongside the given key/value pairs.
func LogMemory(logger *log.Logger, msg string, keyvals ...interface{}) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	keyvals = append(keyvals,
		"heap_mb", float64(m.HeapAlloc)/mb,
		"heap_objects", m.HeapObjects,
		"gc_cycles", m.NumGC,
	)
	logger.Info(msg, keyvals...)
}
