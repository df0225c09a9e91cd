package models

import "time"

// EntityCounts is the dashboard summary of the school.
type EntityCounts struct {
	Students      int64            `json:"students"`
	Teachers      int64            `json:"teachers"`
	Parents       int64            `json:"parents"`
	Classes       int64            `json:"classes"`
	Subjects      int64            `json:"subjects"`
	Lessons       int64            `json:"lessons"`
	Exams         int64            `json:"exams"`
	Assignments   int64            `json:"assignments"`
	Announcements int64            `json:"announcements"`
	Events        int64            `json:"events"`
	StudentsBySex map[string]int64 `json:"studentsBySex"`
	GeneratedAt   time.Time        `json:"generatedAt"`
}

// SystemMetrics summarises process instrumentation.
type SystemMetrics struct {
	RequestCount     uint64    `json:"requestCount"`
	AvgRequestMillis float64   `json:"avgRequestMillis"`
	StoreOperations  uint64    `json:"storeOperations"`
	AvgStoreOpMillis float64   `json:"avgStoreOpMillis"`
	CacheHitRatio    float64   `json:"cacheHitRatio"`
	JoinFallbacks    uint64    `json:"joinFallbacks"`
	Goroutines       int       `json:"goroutines"`
	GeneratedAt      time.Time `json:"generatedAt"`
}
