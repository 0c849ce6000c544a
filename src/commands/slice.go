package commands

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"hexmap/src/args"
	"hexmap/src/config"
	"hexmap/src/hexfile"
)

// SliceRecord is the JSON shape of one data record in slice output.
type SliceRecord struct {
	Segment  string `json:"segment"`
	Address  string `json:"address"`
	Absolute string `json:"absolute"`
	Data     string `json:"data"`
}

// RunSlice executes the slice command
func RunSlice(ctx context.Context, sliceArgs *args.SliceArgs, profile *config.Profile) error {
	seq, err := loadSequence(sliceArgs.Input, profile)
	if err != nil {
		return err
	}

	view := hexfile.BuildSegmentedView(seq)
	result, err := hexfile.QueryRange(view, hexfile.Range32{Start: sliceArgs.Start, End: sliceArgs.End})
	if err != nil {
		return fmt.Errorf("failed to query range: %w", err)
	}

	if result.Segments() == 0 {
		logrus.Infof("No records in range [%08X, %08X]", sliceArgs.Start, sliceArgs.End)
		return nil
	}

	for _, key := range result.Keys() {
		records, _ := result.Records(key)
		for _, record := range records {
			out := SliceRecord{
				Segment:  fmt.Sprintf("%08X", key),
				Address:  fmt.Sprintf("%04X", record.Address),
				Absolute: fmt.Sprintf("%08X", key+uint32(record.Address)),
				Data:     hex.EncodeToString(record.Payload),
			}
			encoded, err := json.Marshal(out)
			if err != nil {
				return fmt.Errorf("failed to marshal record: %w", err)
			}
			fmt.Println(string(encoded))
		}
	}

	return nil
}
