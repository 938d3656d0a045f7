// Package disk models a single-spindle rotating disk: fixed geometry, a
// moving head, and the seek/rotation/transfer time formulas that the driver
// and scheduling policies consult. Grounded on
// original_source/models/disk.py (HardDisk).
package disk

import (
	"math"

	"github.com/diskosim/blocksim/internal/config"
)

// Disk is a rotating-disk model with a moving head and running seek
// statistics. The zero value is not usable; construct with New.
type Disk struct {
	cfg config.Config

	currentTrack int
	seeks        int
	seekTimeMs   float64
}

// New returns a Disk with the head parked at track 0.
func New(cfg config.Config) *Disk {
	return &Disk{cfg: cfg}
}

// TrackOf returns the track a given sector lives on: sector // sectors_per_track.
func (d *Disk) TrackOf(sector int) int {
	return sector / d.cfg.SectorsPerTrack
}

// CurrentTrack returns the head's current track.
func (d *Disk) CurrentTrack() int {
	return d.currentTrack
}

// TotalSeeks returns the number of completed seeks.
func (d *Disk) TotalSeeks() int {
	return d.seeks
}

// TotalSeekTimeMs returns the cumulative time spent seeking, in milliseconds.
func (d *Disk) TotalSeekTimeMs() float64 {
	return d.seekTimeMs
}

// SeekTimeMs computes the time to move the head from one track to another:
// min(direct step, rewind-then-step-out). Per spec.md 4.1.
func (d *Disk) SeekTimeMs(from, to int) float64 {
	direct := math.Abs(float64(to-from)) * d.cfg.TrackSeekTimeMs
	rewind := d.cfg.RewindSeekTimeMs + float64(to)*d.cfg.TrackSeekTimeMs
	return math.Min(direct, rewind)
}

// SeekTo moves the head to track, updating position and running counters.
// Returns the seek time charged.
func (d *Disk) SeekTo(track int) float64 {
	t := d.SeekTimeMs(d.currentTrack, track)
	d.currentTrack = track
	d.seeks++
	d.seekTimeMs += t
	return t
}

// RotationDelayMs is the average half-rotation delay for this disk's rpm.
func (d *Disk) RotationDelayMs() float64 {
	return d.cfg.RotationDelayMs()
}

// SectorAccessMs is the per-sector transfer time for this disk's geometry.
func (d *Disk) SectorAccessMs() float64 {
	return d.cfg.SectorAccessMs()
}
