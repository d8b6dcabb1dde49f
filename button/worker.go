package button

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Event kinds emitted by the Worker.
const (
	EventPressed = "pressed"
	EventClicked = "clicked"
)

// Event is one observed button edge.
type Event struct {
	Kind string
	At   time.Time
}

// Worker polls a Device and turns raw status reads into edge events.
type Worker interface {
	Start()
	Stop()
	Events() chan Event
}

type buttonWorker struct {
	running      bool
	dev          *Device
	interval     time.Duration
	eventChannel chan Event
}

// DefaultPollInterval keeps the poll loop from hammering the bus.
const DefaultPollInterval = 20 * time.Millisecond

// NewWorker returns a Worker polling dev every interval. A non-positive
// interval falls back to DefaultPollInterval.
func NewWorker(dev *Device, interval time.Duration) Worker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &buttonWorker{
		dev:          dev,
		interval:     interval,
		eventChannel: make(chan Event),
	}
}

func (w *buttonWorker) Start() {
	w.running = true
	go func() {
		wasPressed := false

		for w.running {
			pressed, err := w.dev.IsPressed()
			if err != nil {
				log.Println(err)
				time.Sleep(w.interval)
				continue
			}

			if pressed && !wasPressed {
				w.eventChannel <- Event{Kind: EventPressed, At: time.Now()}
			}
			wasPressed = pressed

			clicked, err := w.dev.HasBeenClicked()
			if err != nil {
				log.Println(err)
				time.Sleep(w.interval)
				continue
			}

			if clicked {
				// Clear so the next click is observable again.
				if err := w.dev.ClearEventBits(); err != nil {
					log.Println(err)
				}
				w.eventChannel <- Event{Kind: EventClicked, At: time.Now()}
			}

			time.Sleep(w.interval)
		}
	}()
}

func (w *buttonWorker) Stop() {
	w.running = false
}

func (w *buttonWorker) Events() chan Event {
	return w.eventChannel
}
