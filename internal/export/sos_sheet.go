package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/DInduwara/Flood-management-system/models"
)

const (
	requestsSheet = "SOS Requests"
	summarySheet  = "Summary"
)

// Columns of the triage sheet, in order.
var Columns = []string{
	"ID", "Received (UTC)", "Status", "Full name", "Phone", "Alternate phone",
	"District", "Address", "Landmark", "GPS", "Water level", "Emergency",
	"People", "Children", "Elderly", "Disabled", "Medical", "Needs",
	"Battery %", "Safe hours", "Floor", "Additional info", "Internal notes",
}

var statusOrder = []models.SosStatus{
	models.SosStatusNew, models.SosStatusVerified, models.SosStatusInProgress,
	models.SosStatusResolved, models.SosStatusDismissed,
}

// WriteSosWorkbook writes requests as an .xlsx triage workbook: one row per request
// in the given order plus a per-status summary sheet.
func WriteSosWorkbook(w io.Writer, requests []models.SosRequest, generated time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", requestsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(requestsSheet, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(Columns), 1)
	if err := f.SetCellStyle(requestsSheet, "A1", last, headerStyle); err != nil {
		return err
	}
	if err := f.SetPanes(requestsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	counts := map[models.SosStatus]int{}
	for i := range requests {
		r := &requests[i]
		counts[r.Status]++
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(requestsSheet, cell, rowFor(r)); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Columns))
	if err := f.SetColWidth(requestsSheet, "A", lastCol, 18); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	_ = f.SetCellValue(summarySheet, "A1", fmt.Sprintf("Generated: %s", generated.UTC().Format("2006-01-02 15:04:05")))
	_ = f.SetSheetRow(summarySheet, "A3", &[]any{"Status", "Requests"})
	_ = f.SetCellStyle(summarySheet, "A3", "B3", headerStyle)
	row := 4
	for _, st := range statusOrder {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(summarySheet, cell, &[]any{st.Label(), counts[st]}); err != nil {
			return err
		}
		row++
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(summarySheet, cell, &[]any{"Total", len(requests)}); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func rowFor(r *models.SosRequest) *[]any {
	alt := ""
	if r.AlternatePhoneNumber != nil {
		alt = *r.AlternatePhoneNumber
	}
	var battery any = ""
	if r.PhoneBatteryPercentage != nil {
		battery = *r.PhoneBatteryPercentage
	}
	return &[]any{
		r.ID,
		r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		r.Status.Label(),
		r.FullName,
		r.PhoneNumber,
		alt,
		r.District,
		r.Address,
		r.Landmark,
		r.GPSLocation,
		r.WaterLevel.Label(),
		r.EmergencyType.Label(),
		r.NumberOfPeople,
		yesNo(r.HasChildren),
		yesNo(r.HasElderly),
		yesNo(r.HasDisabled),
		yesNo(r.HasMedical),
		needs(r),
		battery,
		r.SafeHours,
		r.FloorLevel,
		r.AdditionalInfo,
		r.InternalNotes,
	}
}

func needs(r *models.SosRequest) string {
	var out []string
	if r.NeedsFood {
		out = append(out, "food")
	}
	if r.NeedsMedicine {
		out = append(out, "medicine")
	}
	if r.NeedPower {
		out = append(out, "power")
	}
	if r.NeedWater {
		out = append(out, "water")
	}
	return strings.Join(out, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
