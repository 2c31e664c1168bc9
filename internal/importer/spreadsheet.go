package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

const maxXLSRows = 100000

var ErrNoEmployeeIDColumn = errors.New("missing employeeId column")

// headerAliases maps normalized header text to a Row field.
var headerAliases = map[string]string{
	"employeeid":    "employeeId",
	"employee id":   "employeeId",
	"employee_id":   "employeeId",
	"emp id":        "employeeId",
	"id":            "employeeId",
	"mailid":        "mailId",
	"mail id":       "mailId",
	"mail":          "mailId",
	"email":         "mailId",
	"email id":      "mailId",
	"name":          "name",
	"employee name": "name",
	"team":          "team",
	"mobilenumber":  "mobileNumber",
	"mobile number": "mobileNumber",
	"mobile":        "mobileNumber",
	"phone":         "mobileNumber",
}

// ReadRows parses an uploaded sheet into rows. The format is chosen by the
// file extension: .xls, .csv, anything else is read as .xlsx. The first row
// is the header.
func ReadRows(reader io.Reader, filename string) ([]Row, error) {
	cells, err := readCells(reader, filename)
	if err != nil {
		return nil, err
	}
	return parseRows(cells)
}

func readCells(reader io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, err
		}
		if workbook.NumSheets() == 0 {
			return nil, fmt.Errorf("no worksheet found")
		}
		return workbook.ReadAllCells(maxXLSRows), nil
	case ".csv":
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		return r.ReadAll()
	default:
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("no worksheet found")
		}
		return file.GetRows(sheetName)
	}
}

func parseRows(cells [][]string) ([]Row, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}

	columns := map[string]int{}
	for idx, header := range cells[0] {
		if field, ok := headerAliases[normalizeHeader(header)]; ok {
			if _, seen := columns[field]; !seen {
				columns[field] = idx
			}
		}
	}
	if _, ok := columns["employeeId"]; !ok {
		return nil, ErrNoEmployeeIDColumn
	}

	col := func(row []string, field string) string {
		idx, ok := columns[field]
		if !ok {
			return ""
		}
		return cellValue(row, idx)
	}

	rows := make([]Row, 0, len(cells)-1)
	for i, raw := range cells[1:] {
		if blankRow(raw) {
			continue
		}
		rows = append(rows, Row{
			Line:         i + 2,
			EmployeeID:   col(raw, "employeeId"),
			MailID:       col(raw, "mailId"),
			Name:         col(raw, "name"),
			Team:         col(raw, "team"),
			MobileNumber: col(raw, "mobileNumber"),
		})
	}
	return rows, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
