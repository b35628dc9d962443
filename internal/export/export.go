// Package export writes the current game results to an xlsx workbook so a
// host can keep a record after the party.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/xtding233/party-lottery/internal/amida"
	"github.com/xtding233/party-lottery/internal/party"
)

// Sheet names, in workbook order.
const (
	SheetBingo = "Bingo"
	SheetAmida = "Amida"
	SheetInfo  = "Info"
)

// Report is everything written to the workbook.
type Report struct {
	Seed      uint32
	Algorithm string
	Instance  string
	Bingo     party.BingoSnapshot
	Amida     party.AmidaSnapshot
	Pairs     []amida.Pair // nil until the ladder resolves
}

// Collect snapshots both games of h.
func Collect(h *party.Hall) Report {
	pairs, _ := h.AmidaResult()
	return Report{
		Seed:      h.Seed(),
		Algorithm: string(h.Algorithm()),
		Instance:  h.InstanceID().String(),
		Bingo:     h.Bingo(),
		Amida:     h.Amida(),
		Pairs:     pairs,
	}
}

// Write renders r as an xlsx workbook into w.
func Write(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetBingo); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeBingo(f, r.Bingo); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetAmida); err != nil {
		return fmt.Errorf("add %s sheet: %w", SheetAmida, err)
	}
	if err := writeAmida(f, r); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetInfo); err != nil {
		return fmt.Errorf("add %s sheet: %w", SheetInfo, err)
	}
	info := [][]interface{}{
		{"seed", strconv.FormatUint(uint64(r.Seed), 10)},
		{"algorithm", r.Algorithm},
		{"instance", r.Instance},
		{"bingo_round", r.Bingo.Round.String()},
		{"amida_revision", r.Amida.Revision.String()},
	}
	if err := writeRows(f, SheetInfo, info); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeBingo(f *excelize.File, b party.BingoSnapshot) error {
	rows := [][]interface{}{{"#", "number"}}
	for i, n := range b.History {
		rows = append(rows, []interface{}{i + 1, n})
	}
	return writeRows(f, SheetBingo, rows)
}

func writeAmida(f *excelize.File, r Report) error {
	rows := [][]interface{}{{"participant", "prize"}}
	if r.Pairs == nil {
		// unresolved: list who has signed up so far
		for _, name := range r.Amida.Participants {
			rows = append(rows, []interface{}{name, ""})
		}
	} else {
		for _, p := range r.Pairs {
			rows = append(rows, []interface{}{p.Participant, p.Prize})
		}
	}
	if err := writeRows(f, SheetAmida, rows); err != nil {
		return err
	}
	return f.SetColWidth(SheetAmida, "A", "A", 24)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
