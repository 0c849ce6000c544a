package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"hexmap/src/args"
	"hexmap/src/config"
	"hexmap/src/hexfile"
)

// RunFlatten executes the flatten command
func RunFlatten(ctx context.Context, flattenArgs *args.FlattenArgs, profile *config.Profile) error {
	seq, err := loadSequence(flattenArgs.Input, profile)
	if err != nil {
		return err
	}

	view := hexfile.BuildSegmentedView(seq)

	size := flattenArgs.Size
	if size == 0 {
		// Default window: from the start address to the highest byte
		// the image covers.
		end, ok := highestAddress(view)
		if !ok || end < flattenArgs.Start {
			return fmt.Errorf("image has no data at or above %08X", flattenArgs.Start)
		}
		size = end - flattenArgs.Start + 1
	}

	image := hexfile.Flatten(view, flattenArgs.Start, size, profile.Padding)

	if err := os.WriteFile(flattenArgs.Output, image, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logrus.Infof("Wrote %d bytes to '%s' (window %08X+%X, padding %02X)",
		len(image), flattenArgs.Output, flattenArgs.Start, size, profile.Padding)
	return nil
}

// highestAddress returns the highest absolute address covered by any
// data byte in the view.
func highestAddress(view *hexfile.SegmentedView) (uint32, bool) {
	var highest uint32
	found := false
	for _, key := range view.Keys() {
		records, _ := view.Records(key)
		if _, end, _, ok := segmentSpan(key, records); ok {
			if !found || end > highest {
				highest = end
			}
			found = true
		}
	}
	return highest, found
}
