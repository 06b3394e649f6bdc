package ui

import "rcopy/internal/event"

// quietPresenter consumes events but produces no output.
type quietPresenter struct{}

func (p *quietPresenter) Run(events <-chan event.Event) error {
	for range events {
		// Counters live on the collector, written by the engine;
		// presenters only read from it, so there is nothing to do.
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	return ""
}
