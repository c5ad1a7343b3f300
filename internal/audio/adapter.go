// Package audio wraps the host's capture device behind a small port. The
// adapter tracks a live amplitude level and accumulates a transcript while
// recording; it never constructs a capture record itself — the caller
// decides after Stop whether to commit the transcript.
package audio

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Device acquires the capture hardware.
type Device interface {
	Open(ctx context.Context) (Session, error)
}

// Session is one live recording. Levels emits amplitude samples at display
// rate; Segments emits recognized speech segments in arrival order and may
// be nil when the host has no speech-to-text capability. Close releases
// the device and closes both channels.
type Session interface {
	Levels() <-chan float64
	Segments() <-chan string
	Close() error
}

var ErrAlreadyRecording = errors.New("recording already active")

// Adapter is the capture front-end used by the capture surfaces.
type Adapter struct {
	mu         sync.Mutex
	device     Device
	session    Session
	recording  bool
	level      float64
	transcript strings.Builder
	wg         sync.WaitGroup
}

func NewAdapter(device Device) *Adapter {
	return &Adapter{device: device}
}

// Start acquires the device and begins the sampling and transcription
// loops. The previous transcript is discarded.
func (a *Adapter) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.recording {
		return ErrAlreadyRecording
	}

	session, err := a.device.Open(ctx)
	if err != nil {
		return err
	}
	a.session = session
	a.recording = true
	a.transcript.Reset()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for level := range session.Levels() {
			a.mu.Lock()
			a.level = level
			a.mu.Unlock()
		}
	}()

	if segments := session.Segments(); segments != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			for segment := range segments {
				a.mu.Lock()
				a.transcript.WriteString(segment)
				a.mu.Unlock()
			}
		}()
	}
	return nil
}

// Stop halts sampling, releases the device and resets the displayed level
// to zero. The accumulated transcript stays readable. Stopping while not
// recording is a no-op.
func (a *Adapter) Stop() error {
	a.mu.Lock()
	if !a.recording {
		a.mu.Unlock()
		return nil
	}
	session := a.session
	a.session = nil
	a.recording = false
	a.mu.Unlock()

	err := session.Close()
	a.wg.Wait()

	a.mu.Lock()
	a.level = 0
	a.mu.Unlock()
	return err
}

// Recording reports whether a session is active.
func (a *Adapter) Recording() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recording
}

// Level returns the latest amplitude sample, zero when idle.
func (a *Adapter) Level() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.level
}

// Transcript returns the text accumulated since the last Start.
func (a *Adapter) Transcript() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.transcript.String()
}
