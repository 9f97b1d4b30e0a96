// Package export writes audit trails as spreadsheets.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/xuri/excelize/v2"
)

// AuditSheet is the name of the only worksheet in an export
const AuditSheet = "audit"

// ContentType of the workbooks written by the exporter
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var auditHeaders = []string{"Timestamp", "Action", "Resource Type", "Resource ID", "Actor ID", "IP Address", "Metadata"}

type excelAuditExporter struct{}

// NewExcelAuditExporter creates an Exporter that writes .xlsx workbooks
func NewExcelAuditExporter() audit.Exporter {
	return &excelAuditExporter{}
}

func (e *excelAuditExporter) Export(w io.Writer, logs []*audit.AuditLog) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}()

	if err := f.SetSheetName("Sheet1", AuditSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range auditHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(AuditSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, entry := range logs {
		actorID := ""
		if entry.ActorID != nil {
			actorID = *entry.ActorID
		}
		metadata, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata of %s: %w", entry.ID, err)
		}

		row := []interface{}{
			entry.DateTimeCreated.UTC().Format(time.RFC3339),
			entry.Action,
			entry.ResourceType,
			entry.ResourceID,
			actorID,
			entry.IPAddress,
			string(metadata),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(AuditSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
