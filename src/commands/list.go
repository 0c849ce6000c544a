package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"hexmap/src/database"
)

// RunList executes the list command
func RunList(ctx context.Context, db database.DBAdapter) error {
	images, err := database.ListImages(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to list images: %w", err)
	}

	if len(images) == 0 {
		logrus.Info("No images in the catalog")
		return nil
	}

	for _, image := range images {
		fmt.Printf("%-24s  records=%-6d  source=%s  recorded=%s\n",
			image.Name, image.Records, image.Source,
			image.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
