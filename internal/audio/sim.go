package audio

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	defaultSampleInterval  = 16 * time.Millisecond
	defaultSegmentInterval = 900 * time.Millisecond
)

// SimDevice is a software stand-in for a microphone. It emits a wandering
// amplitude signal at display rate and, if Script is set, replays the
// scripted segments one by one while the session stays open.
type SimDevice struct {
	Script          []string
	SampleInterval  time.Duration
	SegmentInterval time.Duration
}

func (d *SimDevice) Open(ctx context.Context) (Session, error) {
	sampleEvery := d.SampleInterval
	if sampleEvery <= 0 {
		sampleEvery = defaultSampleInterval
	}
	segmentEvery := d.SegmentInterval
	if segmentEvery <= 0 {
		segmentEvery = defaultSegmentInterval
	}

	s := &simSession{
		levels:   make(chan float64),
		segments: make(chan string),
		quit:     make(chan struct{}),
	}

	go func() {
		defer close(s.levels)
		ticker := time.NewTicker(sampleEvery)
		defer ticker.Stop()
		var phase float64
		for {
			select {
			case <-s.quit:
				return
			case <-ticker.C:
				phase += 0.25
				level := 0.35 + 0.3*math.Abs(math.Sin(phase)) + 0.2*rand.Float64()
				select {
				case s.levels <- level:
				case <-s.quit:
					return
				}
			}
		}
	}()

	go func() {
		defer close(s.segments)
		for _, segment := range d.Script {
			select {
			case <-s.quit:
				return
			case <-time.After(segmentEvery):
			}
			select {
			case s.segments <- segment:
			case <-s.quit:
				return
			}
		}
		<-s.quit
	}()

	return s, nil
}

type simSession struct {
	levels   chan float64
	segments chan string
	quit     chan struct{}
	once     sync.Once
}

func (s *simSession) Levels() <-chan float64  { return s.levels }
func (s *simSession) Segments() <-chan string { return s.segments }

func (s *simSession) Close() error {
	s.once.Do(func() { close(s.quit) })
	return nil
}
