package store

import (
	"path/filepath"
	"testing"

	"idextract/internal/entity"
)

func TestStoreSaveAll(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "records.db")
	st, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	full := entity.NewDefaultRecord()
	full.IDType = "passport"
	full.Name = "JOHN DOE"
	full.FaceBBox = &entity.BBox{X: 1, Y: 2, W: 3, H: 4}

	set := map[string]entity.IdentityRecord{
		"a.png": full,
		"b.png": entity.NewDefaultRecord(),
	}
	st.SaveAll(set)

	var count int
	if err := st.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("rows = %d, want 2", count)
	}

	var idType string
	var bboxW any
	if err := st.db.QueryRow(
		"SELECT id_type, bbox_w FROM records WHERE image_id = ?", "a.png",
	).Scan(&idType, &bboxW); err != nil {
		t.Fatalf("select: %v", err)
	}
	if idType != "passport" {
		t.Errorf("id_type = %q, want passport", idType)
	}
	if bboxW == nil {
		t.Error("bbox_w should be set for a record with a face box")
	}

	// upsert keeps one row per image
	full.Name = "RENAMED"
	if err := st.UpsertRecord("a.png", full); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := st.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		t.Fatalf("recount: %v", err)
	}
	if count != 2 {
		t.Errorf("rows after upsert = %d, want 2", count)
	}

	var bboxX any
	if err := st.db.QueryRow(
		"SELECT bbox_x FROM records WHERE image_id = ?", "b.png",
	).Scan(&bboxX); err != nil {
		t.Fatalf("select placeholder: %v", err)
	}
	if bboxX != nil {
		t.Errorf("placeholder bbox_x = %v, want NULL", bboxX)
	}
}
