package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// DefaultProbeTimeout bounds a single intelligence probe.
	DefaultProbeTimeout = 10 * time.Second
	// DefaultPortDialTimeout bounds a single TCP connect during the port scan.
	DefaultPortDialTimeout = 2 * time.Second
	// DefaultCollectionDeadline bounds an entire collection; probes still
	// outstanding when it elapses are reported as timeout errors.
	DefaultCollectionDeadline = 30 * time.Second
	// TLSSoonExpiryWindow flags certificates expiring inside this window.
	TLSSoonExpiryWindow = 30 * 24 * time.Hour
)

const (
	// DefaultRateLimit is the per-second budget for batch collections.
	DefaultRateLimit = 2
	// DefaultConcurrency caps concurrent domain collections in a batch run.
	DefaultConcurrency = 4
)

// ScanPorts is the fixed candidate list probed by the port scanner.
var ScanPorts = []int{21, 22, 23, 25, 53, 80, 110, 143, 443, 993, 995, 3306, 3389, 5432, 8080, 8443}

// UserAgent identifies outbound HTTP requests made by the collector.
const UserAgent = "scope-intel/1.0"
