package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hexmap/src/args"
	"hexmap/src/config"
	"hexmap/src/database"
	"hexmap/src/hexfile"
)

// RunRecord executes the record command
func RunRecord(ctx context.Context, recordArgs *args.RecordArgs, db database.DBAdapter, profile *config.Profile) error {
	seq, err := loadSequence(recordArgs.Input, profile)
	if err != nil {
		return err
	}

	view := hexfile.BuildSegmentedView(seq)

	image := &database.Image{
		ID:        uuid.New().String(),
		Name:      recordArgs.Name,
		Source:    describeInput(recordArgs.Input),
		Records:   view.RecordCount(),
		CreatedAt: time.Now().UTC(),
		Segments:  segmentSummaries(view),
	}

	if err := database.SaveImage(ctx, db, image); err != nil {
		return fmt.Errorf("failed to record image: %w", err)
	}

	logrus.Infof("Recorded image '%s' (%s): %d data records in %d segments",
		image.Name, image.ID, image.Records, len(image.Segments))
	return nil
}
