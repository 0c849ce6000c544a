package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"hexmap/src/args"
	"hexmap/src/database"
	"hexmap/src/s3"
)

// RunDrop executes the drop command
func RunDrop(ctx context.Context, dropArgs *args.DropArgs, db database.DBAdapter) error {
	existed, err := database.DeleteImage(ctx, db, dropArgs.Name)
	if err != nil {
		return fmt.Errorf("failed to drop image: %w", err)
	}

	if !existed {
		logrus.Warnf("Image '%s' not found in the catalog", dropArgs.Name)
		return nil
	}

	// Best effort: remove a published artifact when object storage is
	// configured. A leaked artifact will never be read through the
	// catalog again.
	if os.Getenv("S3_ENDPOINT") != "" {
		bucket := os.Getenv("S3_BUCKET")
		if bucket == "" {
			bucket = "firmware"
		}
		operator, err := s3.NewMinIOOperatorFromEnv(ctx, bucket, "", "us-east-1")
		if err == nil {
			if err := operator.Delete(ctx, dropArgs.Name); err != nil {
				logrus.Warnf("Failed to delete published artifact of '%s': %v", dropArgs.Name, err)
			}
		}
	}

	logrus.Infof("Dropped image '%s'", dropArgs.Name)
	return nil
}
