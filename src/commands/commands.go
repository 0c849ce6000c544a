package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"hexmap/src/commands/sources"
	"hexmap/src/config"
	"hexmap/src/database"
	"hexmap/src/hexfile"
)

// loadSequence reads the input (file path, or stdin for "") and
// assembles it into a validated record sequence using the profile's
// decode options.
func loadSequence(input string, profile *config.Profile) (hexfile.Sequence, error) {
	source, err := sources.Open(input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer source.Close()

	lines, err := source.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	seq, err := hexfile.AssembleWithOptions(lines, profile.Options())
	if err != nil {
		return nil, fmt.Errorf("failed to assemble image: %w", err)
	}

	logrus.Debugf("Assembled %d records using profile '%s'", len(seq), profile.Name)
	return seq, nil
}

// segmentSpan computes the inclusive absolute address span and total
// byte count of one segment's records. ok is false for empty segments.
func segmentSpan(key uint32, records []hexfile.Record) (start, end uint32, size int, ok bool) {
	for _, record := range records {
		if record.ByteCount == 0 {
			continue
		}
		low := key + uint32(record.Address)
		high := low + uint32(record.ByteCount) - 1
		if !ok || low < start {
			start = low
		}
		if !ok || high > end {
			end = high
		}
		size += int(record.ByteCount)
		ok = true
	}
	return start, end, size, ok
}

// segmentSummaries converts a segmented view into catalog rows.
func segmentSummaries(view *hexfile.SegmentedView) []database.SegmentSummary {
	var summaries []database.SegmentSummary
	for _, key := range view.Keys() {
		records, _ := view.Records(key)
		summary := database.SegmentSummary{Base: key, Records: len(records)}
		if start, end, _, ok := segmentSpan(key, records); ok {
			summary.StartAddress = start
			summary.EndAddress = end
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func describeInput(input string) string {
	if input == "" || input == "-" {
		return "stdin"
	}
	return input
}
