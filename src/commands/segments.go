package commands

import (
	"context"
	"fmt"

	"hexmap/src/args"
	"hexmap/src/config"
	"hexmap/src/hexfile"
)

// RunSegments executes the segments command
func RunSegments(ctx context.Context, inspectArgs *args.InspectArgs, profile *config.Profile) error {
	seq, err := loadSequence(inspectArgs.Input, profile)
	if err != nil {
		return err
	}

	view := hexfile.BuildSegmentedView(seq)

	for _, key := range view.Keys() {
		records, _ := view.Records(key)
		start, end, size, ok := segmentSpan(key, records)
		if !ok {
			fmt.Printf("%08X  records=%-4d  empty\n", key, len(records))
			continue
		}
		fmt.Printf("%08X  records=%-4d  span=[%08X,%08X]  %d bytes\n",
			key, len(records), start, end, size)
	}

	return nil
}
