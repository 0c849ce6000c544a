package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"hexmap/src/args"
	"hexmap/src/config"
	"hexmap/src/s3"
)

// RunPublish executes the publish command
func RunPublish(ctx context.Context, publishArgs *args.PublishArgs, profile *config.Profile) error {
	if publishArgs.Input == "" || publishArgs.Input == "-" {
		return fmt.Errorf("publish requires a file path input")
	}

	// Malformed images are rejected before anything is uploaded.
	seq, err := loadSequence(publishArgs.Input, profile)
	if err != nil {
		return err
	}
	logrus.Debugf("Image validated: %d records", len(seq))

	data, err := os.ReadFile(publishArgs.Input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	operator, err := s3.NewMinIOOperatorFromEnv(ctx, publishArgs.Bucket, publishArgs.Endpoint, publishArgs.Region)
	if err != nil {
		return fmt.Errorf("failed to create storage operator: %w", err)
	}

	if err := operator.Upload(ctx, publishArgs.Name, data); err != nil {
		return fmt.Errorf("failed to publish image: %w", err)
	}

	logrus.Infof("Published image '%s' (%d bytes) to bucket '%s'",
		publishArgs.Name, len(data), publishArgs.Bucket)
	return nil
}
