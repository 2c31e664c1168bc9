package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadRowsCSV(t *testing.T) {
	data := "Employee ID,Email,Team,Mobile Number\n" +
		"E1,jane.doe@example.com,Tech,9876543210\n" +
		",,,\n" +
		",ghost@example.com,Tech,\n" +
		"E3, sam@example.com ,Operations,1234567890\n"

	rows, err := ReadRows(strings.NewReader(data), "employees.CSV")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected blank row skipped, got %d rows", len(rows))
	}
	if rows[0].EmployeeID != "E1" || rows[0].MailID != "jane.doe@example.com" || rows[0].MobileNumber != "9876543210" {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].EmployeeID != "" || rows[1].Line != 4 {
		t.Errorf("expected row without id kept at line 4, got %+v", rows[1])
	}
	if rows[2].MailID != "sam@example.com" || rows[2].Name != "" {
		t.Errorf("unexpected third row %+v", rows[2])
	}
}

func TestReadRowsXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	values := [][]interface{}{
		{"employeeId", "mailId", "name", "team", "mobileNumber"},
		{"ABC123", "a.b@example.com", "", "Tech", "9876543210"},
		{"XYZ", "x@example.com", "Xavier", "Interns", "1112223334"},
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &v); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	rows, err := ReadRows(bytes.NewReader(buf.Bytes()), "employees.xlsx")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].EmployeeID != "ABC123" || rows[0].Team != "Tech" || rows[0].Line != 2 {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].Name != "Xavier" {
		t.Errorf("unexpected second row %+v", rows[1])
	}
}

func TestReadRowsRequiresIDColumn(t *testing.T) {
	_, err := ReadRows(strings.NewReader("mail,team\na@b.c,Tech\n"), "x.csv")
	if !errors.Is(err, ErrNoEmployeeIDColumn) {
		t.Fatalf("expected ErrNoEmployeeIDColumn, got %v", err)
	}
}

func TestReadRowsEmpty(t *testing.T) {
	if _, err := ReadRows(strings.NewReader(""), "x.csv"); err == nil {
		t.Fatalf("expected error for empty sheet")
	}
}

func TestNormalizeHeader(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"  Employee ID ", "employee id"},
		{"\ufeffemployeeId", "employeeid"},
		{"MAIL", "mail"},
	}
	for _, tc := range testCases {
		if got := normalizeHeader(tc.input); got != tc.expected {
			t.Errorf("normalizeHeader(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
