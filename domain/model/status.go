package model

import "time"

// WatchState is the watch loop lifecycle state
type WatchState string

const (
	StateIdle         WatchState = "idle"
	StateInitializing WatchState = "initializing"
	StatePolling      WatchState = "polling"
	StateStopped      WatchState = "stopped"
)

// WatchStatus is a point-in-time snapshot of the watch loop counters.
type WatchStatus struct {
	State               WatchState `json:"state"`
	Root                string     `json:"root"`
	StartedAt           time.Time  `json:"startedAt"`
	Cycles              int64      `json:"cycles"`
	Dispatched          int64      `json:"dispatched"`
	Succeeded           int64      `json:"succeeded"`
	Failed              int64      `json:"failed"`
	SkippedObservations int64      `json:"skippedObservations"`
	ScanFailures        int64      `json:"scanFailures"`
	Pruned              int64      `json:"pruned"`
	TrackedFiles        int        `json:"trackedFiles"`
	LastScanError       string     `json:"lastScanError,omitempty"`
	LastCycleAt         time.Time  `json:"lastCycleAt"`
}
