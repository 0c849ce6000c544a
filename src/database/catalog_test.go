package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestCatalog(t *testing.T) DBAdapter {
	t.Helper()

	ctx := context.Background()
	db, err := CreateDatabaseAdapter(ctx, "sqlite:"+filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("CreateDatabaseAdapter failed: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func testImage(name string) *Image {
	return &Image{
		ID:        "test-" + name,
		Name:      name,
		Source:    name + ".hex",
		Records:   3,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Segments: []SegmentSummary{
			{Base: 0x00000000, Records: 1, StartAddress: 0x0030, EndAddress: 0x0032},
			{Base: 0x00120000, Records: 2, StartAddress: 0x00120010, EndAddress: 0x00120020},
		},
	}
}

func TestSaveAndGetImage(t *testing.T) {
	ctx := context.Background()
	db := openTestCatalog(t)

	if err := SaveImage(ctx, db, testImage("bootloader")); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	image, err := GetImage(ctx, db, "bootloader")
	if err != nil {
		t.Fatalf("GetImage failed: %v", err)
	}
	if image.Records != 3 {
		t.Errorf("Records = %d, want 3", image.Records)
	}
	if len(image.Segments) != 2 {
		t.Fatalf("segment count = %d, want 2", len(image.Segments))
	}
	if image.Segments[1].Base != 0x00120000 {
		t.Errorf("segment base = %08X, want 00120000", image.Segments[1].Base)
	}
	if image.Segments[1].EndAddress != 0x00120020 {
		t.Errorf("segment end = %08X, want 00120020", image.Segments[1].EndAddress)
	}
}

func TestSaveImageDuplicateName(t *testing.T) {
	ctx := context.Background()
	db := openTestCatalog(t)

	if err := SaveImage(ctx, db, testImage("app")); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	duplicate := testImage("app")
	duplicate.ID = "test-app-2"
	if err := SaveImage(ctx, db, duplicate); err == nil {
		t.Errorf("duplicate image name accepted")
	}
}

func TestListImages(t *testing.T) {
	ctx := context.Background()
	db := openTestCatalog(t)

	for i, name := range []string{"one", "two"} {
		image := testImage(name)
		image.CreatedAt = image.CreatedAt.Add(time.Duration(i) * time.Hour)
		if err := SaveImage(ctx, db, image); err != nil {
			t.Fatalf("SaveImage failed: %v", err)
		}
	}

	images, err := ListImages(ctx, db)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("image count = %d, want 2", len(images))
	}
	// Newest first.
	if images[0].Name != "two" {
		t.Errorf("first image = %q, want two", images[0].Name)
	}
}

func TestDeleteImage(t *testing.T) {
	ctx := context.Background()
	db := openTestCatalog(t)

	if err := SaveImage(ctx, db, testImage("gone")); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	existed, err := DeleteImage(ctx, db, "gone")
	if err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	if !existed {
		t.Errorf("DeleteImage reported image missing")
	}

	if _, err := GetImage(ctx, db, "gone"); err == nil {
		t.Errorf("image still present after delete")
	}

	existed, err = DeleteImage(ctx, db, "gone")
	if err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	if existed {
		t.Errorf("second delete reported image present")
	}
}
