package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Codes are grouped by producer:
// 1xxx scanner-level markup findings, 2xxx document-contract findings,
// 9xxx infrastructure errors.
type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Разметка (сканер и сборка модели)
	ScanInfo                Code = 1000
	ScanUnterminatedFence   Code = 1001
	ScanMalformedTableDelim Code = 1002
	ScanTableCellCount      Code = 1003
	ScanEmptyHeading        Code = 1004

	// Контракт документа (правила)
	StructInfo             Code = 2000
	StructSectionCount     Code = 2001
	StructDuplicateSection Code = 2002
	StructSectionGap       Code = 2003
	StructSectionOrder     Code = 2004

	StructSummaryMissing    Code = 2101
	StructSummaryRowCount   Code = 2102
	StructSummaryOrder      Code = 2103
	StructSummaryUnknownRef Code = 2104
	StructSummaryDuplicate  Code = 2105

	// Инфраструктура
	IOLoadFileError Code = 9001
)

// ID returns the stable textual identifier used in output formats
// ("MD1001", "DOC2003", "IO9001").
func (c Code) ID() string {
	switch {
	case c >= 1000 && c < 2000:
		return fmt.Sprintf("MD%04d", uint16(c))
	case c >= 2000 && c < 3000:
		return fmt.Sprintf("DOC%04d", uint16(c))
	case c >= 9000:
		return fmt.Sprintf("IO%04d", uint16(c))
	default:
		return fmt.Sprintf("X%04d", uint16(c))
	}
}

func (c Code) String() string {
	return c.ID()
}
