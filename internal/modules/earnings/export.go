package earnings

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary = "Resumo"
	sheetItems   = "Atendimentos"
)

// WriteReportXLSX renders the report as a workbook with a per-barber summary
// sheet and a sheet listing every appointment.
func WriteReportXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetItems); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := writeSummary(f, r, header); err != nil {
		return err
	}
	if err := writeItems(f, r, header); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, r Report, header int) error {
	headers := []any{"Barbeiro", "Atendimentos", "Bruto", "Ganhos", "Comissão"}
	if err := writeRow(f, sheetSummary, 1, headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "E1", header); err != nil {
		return err
	}

	row := 2
	for _, b := range r.Barbeiros {
		if err := writeRow(f, sheetSummary, row, []any{b.Barbeiro, b.Atendimentos, b.Bruto, b.Ganhos, b.Comissao}); err != nil {
			return err
		}
		row++
	}

	totals := []any{"Total", r.Totais.Atendimentos, r.Totais.Bruto, r.Totais.Ganhos, r.Totais.Comissao}
	if err := writeRow(f, sheetSummary, row, totals); err != nil {
		return err
	}
	last := fmt.Sprintf("E%d", row)
	if err := f.SetCellStyle(sheetSummary, fmt.Sprintf("A%d", row), last, header); err != nil {
		return err
	}

	_ = f.SetColWidth(sheetSummary, "A", "A", 20)
	_ = f.SetColWidth(sheetSummary, "B", "E", 14)
	return nil
}

func writeItems(f *excelize.File, r Report, header int) error {
	headers := []any{"Barbeiro", "Dia", "Horário", "Cliente", "Serviço", "Preço", "Ganho", "Comissão", "Pagamento"}
	if err := writeRow(f, sheetItems, 1, headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetItems, "A1", "I1", header); err != nil {
		return err
	}

	row := 2
	for _, b := range r.Barbeiros {
		for _, it := range b.Itens {
			values := []any{b.Barbeiro, it.Dia, it.Horario, it.Cliente, it.Servico, it.Preco, it.Ganho, it.Comissao, it.FormaPagamento}
			if err := writeRow(f, sheetItems, row, values); err != nil {
				return err
			}
			row++
		}
	}

	_ = f.SetColWidth(sheetItems, "A", "A", 18)
	_ = f.SetColWidth(sheetItems, "D", "E", 22)
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
