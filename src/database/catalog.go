package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Catalog schema. Addresses and segment bases are stored as BIGINT so
// 32-bit values fit on both backends. One statement per string: pgx
// does not accept multi-statement Exec.
var catalogSchema = []string{`
CREATE TABLE IF NOT EXISTS images(
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    source TEXT NOT NULL,
    records BIGINT NOT NULL,
    created_at TEXT NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS image_segments(
    image_id TEXT NOT NULL,
    segment_base BIGINT NOT NULL,
    records BIGINT NOT NULL,
    start_address BIGINT NOT NULL,
    end_address BIGINT NOT NULL,

    PRIMARY KEY (image_id, segment_base),
    FOREIGN KEY (image_id) REFERENCES images(id) ON DELETE CASCADE
)`}

// SegmentSummary describes one segment of a cataloged image: its base,
// how many data records it holds, and the inclusive absolute address
// span they cover. Empty segments carry a zero span.
type SegmentSummary struct {
	Base         uint32
	Records      int
	StartAddress uint32
	EndAddress   uint32
}

// Image is one cataloged decode result.
type Image struct {
	ID        string
	Name      string
	Source    string
	Records   int
	CreatedAt time.Time
	Segments  []SegmentSummary
}

// InitSchema creates the catalog tables if they do not exist.
func InitSchema(ctx context.Context, db DBAdapter) error {
	for _, statement := range catalogSchema {
		if err := db.Exec(ctx, statement); err != nil {
			return fmt.Errorf("failed to execute schema: %w", err)
		}
	}

	logrus.Debug("Catalog schema initialized")
	return nil
}

// SaveImage inserts an image and its segment summaries.
func SaveImage(ctx context.Context, db DBAdapter, image *Image) error {
	err := db.Exec(ctx,
		fmt.Sprintf("INSERT INTO images (id, name, source, records, created_at) VALUES (%s, %s, %s, %s, %s)",
			db.Placeholder(1), db.Placeholder(2), db.Placeholder(3), db.Placeholder(4), db.Placeholder(5)),
		image.ID, image.Name, image.Source, image.Records,
		image.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}

	for _, segment := range image.Segments {
		err := db.Exec(ctx,
			fmt.Sprintf("INSERT INTO image_segments (image_id, segment_base, records, start_address, end_address) VALUES (%s, %s, %s, %s, %s)",
				db.Placeholder(1), db.Placeholder(2), db.Placeholder(3), db.Placeholder(4), db.Placeholder(5)),
			image.ID, int64(segment.Base), segment.Records,
			int64(segment.StartAddress), int64(segment.EndAddress),
		)
		if err != nil {
			return fmt.Errorf("failed to insert segment %08X: %w", segment.Base, err)
		}
	}

	return nil
}

// GetImage fetches one cataloged image by name, including its segments.
func GetImage(ctx context.Context, db DBAdapter, name string) (*Image, error) {
	var image Image
	var createdAt string

	row := db.QueryRow(ctx,
		fmt.Sprintf("SELECT id, name, source, records, created_at FROM images WHERE name=%s", db.Placeholder(1)),
		name,
	)
	if err := row.Scan(&image.ID, &image.Name, &image.Source, &image.Records, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to find image '%s': %w", name, err)
	}

	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at of image '%s': %w", name, err)
	}
	image.CreatedAt = parsed

	rows, err := db.Query(ctx,
		fmt.Sprintf("SELECT segment_base, records, start_address, end_address FROM image_segments WHERE image_id=%s ORDER BY segment_base", db.Placeholder(1)),
		image.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var base, start, end int64
		var records int
		if err := rows.Scan(&base, &records, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		image.Segments = append(image.Segments, SegmentSummary{
			Base:         uint32(base),
			Records:      records,
			StartAddress: uint32(start),
			EndAddress:   uint32(end),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segments: %w", err)
	}

	return &image, nil
}

// ListImages returns all cataloged images without their segments,
// newest first.
func ListImages(ctx context.Context, db DBAdapter) ([]Image, error) {
	rows, err := db.Query(ctx,
		"SELECT id, name, source, records, created_at FROM images ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var image Image
		var createdAt string
		if err := rows.Scan(&image.ID, &image.Name, &image.Source, &image.Records, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			image.CreatedAt = parsed
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}

	return images, nil
}

// DeleteImage removes an image and its segments. It reports whether an
// image with that name existed.
func DeleteImage(ctx context.Context, db DBAdapter, name string) (bool, error) {
	image, err := GetImage(ctx, db, name)
	if err != nil {
		return false, nil
	}

	err = db.Exec(ctx,
		fmt.Sprintf("DELETE FROM image_segments WHERE image_id=%s", db.Placeholder(1)),
		image.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete segments of '%s': %w", name, err)
	}

	err = db.Exec(ctx,
		fmt.Sprintf("DELETE FROM images WHERE id=%s", db.Placeholder(1)),
		image.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete image '%s': %w", name, err)
	}

	return true, nil
}
