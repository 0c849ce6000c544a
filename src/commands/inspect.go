package commands

import (
	"context"
	"fmt"

	"hexmap/src/args"
	"hexmap/src/config"
	"hexmap/src/hexfile"
)

// RunInspect executes the inspect command
func RunInspect(ctx context.Context, inspectArgs *args.InspectArgs, profile *config.Profile) error {
	seq, err := loadSequence(inspectArgs.Input, profile)
	if err != nil {
		return err
	}

	view := hexfile.BuildSegmentedView(seq)

	shape := "segmented (32-bit)"
	if _, err := hexfile.BuildLinearView(seq, nil); err == nil {
		shape = "linear (16-bit)"
	}

	total := 0
	for _, key := range view.Keys() {
		records, _ := view.Records(key)
		_, _, size, _ := segmentSpan(key, records)
		total += size
	}

	fmt.Printf("Source:   %s\n", describeInput(inspectArgs.Input))
	fmt.Printf("Shape:    %s\n", shape)
	fmt.Printf("Records:  %d data, %d total\n", view.RecordCount(), len(seq))
	fmt.Printf("Segments: %d\n", view.Segments())
	fmt.Printf("Bytes:    %d\n", total)

	return nil
}
