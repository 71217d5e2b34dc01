package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"

	"github.com/xuri/excelize/v2"
)

// csvHeader is the canonical column order for both import and export.
var csvHeader = []string{
	"employee_code", "thai_name", "english_name", "nickname",
	"email", "phone", "position", "department", "start_date",
}

// ImportCSV loads employees row by row. A bad row is recorded and skipped;
// the rows around it still commit. Row numbers in the result are 1-based
// and count the header.
func (s *EmployeeService) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns, err := mapCSVColumns(header)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResultDTO{Errors: []dto.ImportRowError{}}
	rowNum := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}

		payload, err := recordToEmployee(record, columns)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}

		if _, err := s.CreateEmployee(ctx, payload); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		result.Imported++
	}

	s.audit.Append(ctx, "EMPLOYEE_IMPORT", "employee", "", map[string]interface{}{
		"imported": result.Imported,
		"failed":   result.Failed,
	})

	return result, nil
}

// mapCSVColumns matches the header to known column names, tolerating
// reordered columns. employee_code, thai_name and english_name must be
// present.
func mapCSVColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"employee_code", "thai_name", "english_name"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}
	return columns, nil
}

func recordToEmployee(record []string, columns map[string]int) (dto.CreateEmployeeDTO, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	payload := dto.CreateEmployeeDTO{
		EmployeeCode: field("employee_code"),
		ThaiName:     field("thai_name"),
		EnglishName:  field("english_name"),
		Nickname:     field("nickname"),
		Email:        field("email"),
		Phone:        field("phone"),
		Position:     field("position"),
		Department:   field("department"),
		StartDate:    field("start_date"),
	}

	if payload.EmployeeCode == "" {
		return payload, fmt.Errorf("employee_code is required")
	}
	if payload.ThaiName == "" && payload.EnglishName == "" {
		return payload, fmt.Errorf("at least one of thai_name or english_name is required")
	}
	return payload, nil
}

func (s *EmployeeService) ExportCSV(ctx context.Context) ([]byte, error) {
	employees, err := s.employeeRepo.GetAllEmployees(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, e := range employees {
		if err := writer.Write(employeeCSVRecord(e)); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	s.audit.Append(ctx, "EMPLOYEE_EXPORT", "employee", "", map[string]interface{}{
		"format": "csv",
		"count":  len(employees),
	})
	return buf.Bytes(), nil
}

func employeeCSVRecord(e entities.Employee) []string {
	startDate := ""
	if e.StartDate.Valid {
		startDate = e.StartDate.Time.Format(startDateLayout)
	}
	return []string{
		e.EmployeeCode, e.ThaiName, e.EnglishName, e.Nickname,
		e.Email, e.Phone, e.Position, e.Department, startDate,
	}
}

// ExportXLSX writes the roster to a styled spreadsheet for the HR side,
// which lives in Excel.
func (s *EmployeeService) ExportXLSX(ctx context.Context) ([]byte, error) {
	employees, err := s.employeeRepo.GetAllEmployees(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Employees"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1565C0"}},
	})
	if err != nil {
		return nil, err
	}

	titles := []string{"Code", "Thai Name", "English Name", "Nickname", "Email", "Phone", "Position", "Department", "Start Date", "Active"}
	for i, title := range titles {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(titles), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return nil, err
	}

	for rowIdx, e := range employees {
		startDate := ""
		if e.StartDate.Valid {
			startDate = e.StartDate.Time.Format(startDateLayout)
		}
		active := "No"
		if e.Active {
			active = "Yes"
		}
		values := []interface{}{
			e.EmployeeCode, e.ThaiName, e.EnglishName, e.Nickname, e.Email,
			e.Phone, e.Position, e.Department, startDate, active,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "J", 18); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	s.audit.Append(ctx, "EMPLOYEE_EXPORT", "employee", "", map[string]interface{}{
		"format": "xlsx",
		"count":  len(employees),
	})
	return buf.Bytes(), nil
}
