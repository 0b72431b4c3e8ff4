package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"idextract/constants"
	"idextract/internal/entity"
)

// encodeJSON emits one object keyed by image identifier. Field order within
// each record follows the IdentityRecord declaration; booleans stay
// booleans and face_bbox is a 4-element array or omitted.
func (w *Writer) encodeJSON(set map[string]entity.IdentityRecord) ([]byte, error) {
	return json.MarshalIndent(set, "", "    ")
}

// encodeTXT emits one human-readable block per image: an identifier line
// followed by indented field lines in canonical order.
func (w *Writer) encodeTXT(set map[string]entity.IdentityRecord) ([]byte, error) {
	var buf bytes.Buffer
	for _, id := range sortedIDs(set) {
		rec := set[id]
		fmt.Fprintf(&buf, "Filename: %s\n", id)
		for _, field := range constants.FieldOrder {
			fmt.Fprintf(&buf, "  %s: %s\n", field, fieldValue(rec, field))
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// encodeCSV emits a header row of image_id plus the canonical field list,
// then one row per image. The bbox is one semicolon-delimited column.
func (w *Writer) encodeCSV(set map[string]entity.IdentityRecord) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	header := append([]string{"image_id"}, constants.FieldOrder...)
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	for _, id := range sortedIDs(set) {
		rec := set[id]
		row := make([]string, 0, len(header))
		row = append(row, id)
		for _, field := range constants.FieldOrder {
			row = append(row, fieldValue(rec, field))
		}
		if err := cw.Write(row); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// encodeXLSX emits the same flat layout as CSV into a single worksheet.
func (w *Writer) encodeXLSX(set map[string]entity.IdentityRecord) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Records"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(1, 1, "image_id")
	for i, field := range constants.FieldOrder {
		write(i+2, 1, field)
	}

	row := 2
	for _, id := range sortedIDs(set) {
		rec := set[id]
		write(1, row, id)
		for i, field := range constants.FieldOrder {
			write(i+2, row, fieldValue(rec, field))
		}
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
