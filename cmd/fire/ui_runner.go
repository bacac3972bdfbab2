package main

import (
	"context"
	"io"

	"fire/internal/buildpipeline"
	"fire/internal/driver"
	"fire/internal/ui"
)

type structureOutcome struct {
	result *driver.StructureResult
	err    error
}

// runStructureWithUI runs the driver in the background and renders its
// progress events until it finishes.
func runStructureWithUI(ctx context.Context, title string, out io.Writer, req *driver.StructureRequest) (*driver.StructureResult, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan structureOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := driver.Structure(ctx, &reqCopy)
		close(events)
		outcomeCh <- structureOutcome{result: res, err: err}
	}()

	uiErr := ui.Run(title, events, out)
	if uiErr != nil {
		// UI упал: дочитываем события, чтобы драйвер не заблокировался
		for range events {
		}
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
