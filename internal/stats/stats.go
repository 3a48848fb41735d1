package stats

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/alexivanou/geotrip-api/internal/config"
	"github.com/jmoiron/sqlx"
)

// Tables reported by the collector, parents first.
var Tables = []string{
	"countries", "cities", "pois", "poi_images", "tags", "poi_tags",
	"users", "favorites", "visited",
}

type Stats struct {
	Timestamp time.Time     `json:"timestamp"`
	Memory    MemoryStats   `json:"memory"`
	Database  DatabaseStats `json:"database"`
	Runtime   RuntimeStats  `json:"runtime"`
}

type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	HeapInuse  uint64 `json:"heap_inuse"`
}

type DatabaseStats struct {
	Type            string      `json:"type"`
	TotalRecords    int64       `json:"total_records"`
	SizeBytes       int64       `json:"size_bytes"`
	OpenConnections int         `json:"open_connections"`
	InUse           int         `json:"in_use"`
	TableStats      []TableStat `json:"table_stats"`
}

type TableStat struct {
	Name     string `json:"name"`
	RowCount int64  `json:"row_count"`
}

type RuntimeStats struct {
	NumGoroutines int   `json:"num_goroutines"`
	NumCPU        int   `json:"num_cpu"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// Collector gathers process and storage statistics. Memory figures are cached
// briefly since runtime.ReadMemStats stops the world.
type Collector struct {
	db        *sqlx.DB
	config    config.DBConfig
	startTime time.Time

	mu        sync.RWMutex
	cachedMem *MemoryStats
	cacheTime time.Time
}

var memStatsCacheDuration = 5 * time.Second

func NewCollector(db *sqlx.DB, cfg config.DBConfig) *Collector {
	return &Collector{
		db:        db,
		config:    cfg,
		startTime: time.Now(),
	}
}

func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	dbStats, err := c.collectDatabaseStats(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Timestamp: time.Now(),
		Memory:    c.collectMemoryStats(),
		Database:  *dbStats,
		Runtime:   c.collectRuntimeStats(),
	}, nil
}

func (c *Collector) collectMemoryStats() MemoryStats {
	c.mu.RLock()
	if c.cachedMem != nil && time.Since(c.cacheTime) < memStatsCacheDuration {
		mem := *c.cachedMem
		c.mu.RUnlock()
		return mem
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	mem := MemoryStats{
		Alloc:      m.Alloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		HeapAlloc:  m.HeapAlloc,
		HeapInuse:  m.HeapInuse,
	}
	c.cachedMem = &mem
	c.cacheTime = time.Now()
	return mem
}

func (c *Collector) collectDatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	pool := c.db.Stats()
	stats := &DatabaseStats{
		Type:            string(c.config.Type),
		OpenConnections: pool.OpenConnections,
		InUse:           pool.InUse,
		TableStats:      make([]TableStat, 0, len(Tables)),
	}

	if size, err := c.databaseSize(ctx); err == nil {
		stats.SizeBytes = size
	}

	for _, table := range Tables {
		var count int64
		if err := c.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		stats.TableStats = append(stats.TableStats, TableStat{Name: table, RowCount: count})
		stats.TotalRecords += count
	}

	return stats, nil
}

func (c *Collector) databaseSize(ctx context.Context) (int64, error) {
	var size int64
	query := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
	if c.config.Type == config.DBTypePostgreSQL {
		query = "SELECT pg_database_size(current_database())"
	}
	if err := c.db.GetContext(ctx, &size, query); err != nil {
		return 0, err
	}
	return size, nil
}

func (c *Collector) collectRuntimeStats() RuntimeStats {
	return RuntimeStats{
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		UptimeSeconds: int64(time.Since(c.startTime).Seconds()),
	}
}
