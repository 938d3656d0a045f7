// Package config holds the tunables for a simulated disk, cache, scheduler
// and syscall layer. Loading these values from a file or flags is out of
// scope here; callers build a Config literal (usually starting from
// Default) the way go-ublk callers build a DeviceParams literal.
package config

// Config is the full set of tunables described in spec.md section 6.
type Config struct {
	// Disk geometry.
	TracksNum        int
	SectorsPerTrack  int
	TrackSeekTimeMs  float64
	RewindSeekTimeMs float64
	RotationSpeedRPM float64

	// Buffer cache.
	BuffersNum int

	// Timing, in microseconds unless noted.
	SyscallReadTimeUS   int64
	SyscallWriteTimeUS  int64
	DiskIntrTimeUS      int64
	QuantumTimeUS       int64
	BeforeWritingTimeUS int64
	AfterReadingTimeUS  int64

	// Segmented LFU.
	LFULeftSegmentMax   int
	LFUMiddleSegmentMax int

	// LOOK.
	LookTrackReadMax int

	// NLOOK.
	NLookQueueMaxLength int
}

// Default returns the same defaults as original_source/config.py's
// SystemConfig.__init__.
func Default() Config {
	return Config{
		TracksNum:        10000,
		SectorsPerTrack:  500,
		TrackSeekTimeMs:  0.5,
		RewindSeekTimeMs: 10.0,
		RotationSpeedRPM: 7500,

		BuffersNum: 10,

		SyscallReadTimeUS:   150,
		SyscallWriteTimeUS:  150,
		DiskIntrTimeUS:      50,
		QuantumTimeUS:       20000,
		BeforeWritingTimeUS: 7000,
		AfterReadingTimeUS:  7000,

		LFULeftSegmentMax:   3,
		LFUMiddleSegmentMax: 2,

		LookTrackReadMax: 1,

		NLookQueueMaxLength: 10,
	}
}

// RotationDelayMs is the average half-rotation delay, per spec.md 4.1:
// ROTATION_DELAY = (60000/rpm)/2 ms.
func (c Config) RotationDelayMs() float64 {
	return (60000.0 / c.RotationSpeedRPM) / 2
}

// SectorAccessMs is the per-sector transfer time, per spec.md 4.1:
// SECTOR_ACCESS = (60000/rpm)/sectors_per_track ms.
func (c Config) SectorAccessMs() float64 {
	return (60000.0 / c.RotationSpeedRPM) / float64(c.SectorsPerTrack)
}

// Validate reports whether the configuration is internally consistent
// enough to run. It does not second-guess scenario-specific values, only
// catches configurations that would make the engine's invariants
// unsatisfiable.
func (c Config) Validate() error {
	switch {
	case c.TracksNum <= 0:
		return errInvalid("TracksNum must be positive")
	case c.SectorsPerTrack <= 0:
		return errInvalid("SectorsPerTrack must be positive")
	case c.BuffersNum <= 0:
		return errInvalid("BuffersNum must be positive")
	case c.RotationSpeedRPM <= 0:
		return errInvalid("RotationSpeedRPM must be positive")
	case c.LFULeftSegmentMax < 0 || c.LFUMiddleSegmentMax < 0:
		return errInvalid("LFU segment maxima must not be negative")
	case c.LookTrackReadMax <= 0:
		return errInvalid("LookTrackReadMax must be positive")
	case c.NLookQueueMaxLength <= 0:
		return errInvalid("NLookQueueMaxLength must be positive")
	}
	return nil
}

type validationError string

func (e validationError) Error() string { return string(e) }

func errInvalid(msg string) error { return validationError(msg) }
