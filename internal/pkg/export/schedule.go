// Package export renders schedules as spreadsheets.
package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/coursesched/internal/app/models"
)

// ContentTypeXLSX is the MIME type of the generated workbooks
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrGenerateFailed is returned when the workbook cannot be written
var ErrGenerateFailed = errors.New("failed to generate spreadsheet")

const sheetName = "Schedule"

var headers = []string{"Date", "Start", "End", "Course", "Room", "Lecturer"}

// ScheduleWorkbook writes one row per session under a title row and a header row.
func ScheduleWorkbook(title string, sessions []*models.SessionDetails) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 8)
	f.SetColWidth(sheetName, "D", "D", 28)
	f.SetColWidth(sheetName, "E", "E", 8)
	f.SetColWidth(sheetName, "F", "F", 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	lastCol := colName(len(headers) - 1)
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(lastCol, 2), headerStyle)

	row := 3
	for _, s := range sessions {
		values := []interface{}{
			s.Date.Format("2006-01-02"),
			s.StartTime.String(),
			s.EndTime.String(),
			s.CourseName,
			s.RoomNumber,
			s.LecturerName,
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(colName(i), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}
	return buf, nil
}

// Filename suggests a download name for a schedule export
func Filename(owner, from, to string) string {
	return fmt.Sprintf("schedule_%s_%s_%s.xlsx", owner, from, to)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
