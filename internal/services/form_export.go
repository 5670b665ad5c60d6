package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/form-builder-service/internal/editor"
	"github.com/SAP-F-2025/form-builder-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const questionsSheet = "Questions"

var exportHeaders = []string{"Position", "ID", "Question", "Type", "Required"}

// ===== EXPORT OPERATIONS =====

// ExportToExcel writes the form's questions to a workbook, one row per
// question in form order. Options follow the fixed columns, one per cell.
func (s *formService) ExportToExcel(ctx context.Context, id string, userID string) (data []byte, err error) {
	op := s.svcLogger.WithOperation(ctx, "export_form", userID)
	defer func() { op.LogResult(id, "form", err) }()

	form, err := s.getForm(ctx, id)
	if err != nil {
		return nil, err
	}
	questions, err := toQuestions(form.Questions)
	if err != nil {
		return nil, err
	}

	data, err = writeQuestionsWorkbook(questions)
	if err != nil {
		return nil, err
	}

	op.LogAudit(AuditEventExport, id, "form", map[string]interface{}{"format": "xlsx"})
	return data, nil
}

func writeQuestionsWorkbook(questions []models.Question) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(questionsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	maxOptions := 0
	for _, q := range questions {
		if len(q.Options) > maxOptions {
			maxOptions = len(q.Options)
		}
	}

	headers := append([]string{}, exportHeaders...)
	for i := 1; i <= maxOptions; i++ {
		headers = append(headers, fmt.Sprintf("Option %d", i))
	}
	if err := setRow(f, 1, toCells(headers)); err != nil {
		return nil, err
	}

	for i, q := range questions {
		row := []interface{}{i + 1, q.ID, q.QuestionName, string(q.QuestionType), q.Required}
		for _, option := range q.Options {
			row = append(row, option)
		}
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(questionsSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// ===== IMPORT OPERATIONS =====

// ImportQuestionsFromExcel reads a workbook in the export layout and rebuilds
// the question list through the editor, so imported questions get fresh ids.
// Only the Question, Type, Required and Option columns are read; Type accepts
// either the stored value or its label.
func (s *formService) ImportQuestionsFromExcel(ctx context.Context, reader io.Reader) ([]models.Question, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "Excel file has no sheets", nil)
	}

	sheetName := sheets[0]
	if idx, err := f.GetSheetIndex(questionsSheet); err == nil && idx >= 0 {
		sheetName = questionsSheet
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, NewValidationError("file", "Excel must have header row and at least one data row", len(rows))
	}

	questions, errs := parseQuestionRows(rows)
	if len(errs) > 0 {
		return nil, errs
	}

	s.logger.Info("Excel import completed", "questions", len(questions))
	return questions, nil
}

func parseQuestionRows(rows [][]string) ([]models.Question, ValidationErrors) {
	headerMap := make(map[string]int)
	var optionCols []int
	for i, header := range rows[0] {
		h := strings.ToLower(strings.TrimSpace(header))
		if strings.HasPrefix(h, "option") {
			optionCols = append(optionCols, i)
			continue
		}
		headerMap[h] = i
	}

	var errs ValidationErrors
	if _, ok := headerMap["type"]; !ok {
		errs = append(errs, *NewValidationError("header", "missing Type column", rows[0]))
		return nil, errs
	}

	e := editor.New()
	for rowIndex, record := range rows[1:] {
		rowNum := rowIndex + 2
		if isBlankRow(record) {
			continue
		}

		qType, ok := models.ParseQuestionType(cellValue(record, headerMap, "type"))
		if !ok {
			errs = append(errs, *NewValidationError(fmt.Sprintf("row %d: type", rowNum),
				"must be a valid question type (single, multiple, text, document)", cellValue(record, headerMap, "type")))
			continue
		}

		if _, err := e.AddQuestion(); err != nil {
			errs = append(errs, *NewValidationError(fmt.Sprintf("row %d", rowNum), err.Error(), nil))
			continue
		}
		index := e.Len() - 1

		field := fmt.Sprintf("row %d", rowNum)
		apply := func(err error) {
			if err != nil {
				errs = append(errs, *NewValidationError(field, err.Error(), nil))
			}
		}
		apply(e.SetQuestionName(index, cellValue(record, headerMap, "question")))
		apply(e.SetQuestionType(index, qType))
		apply(e.SetRequired(index, parseBool(cellValue(record, headerMap, "required"))))

		for i, option := range rowOptions(record, optionCols) {
			if i > 0 {
				apply(e.AddOption(index))
			}
			apply(e.SetOption(index, i, option))
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	if e.Len() == 0 {
		errs = append(errs, *NewValidationError("file", "no questions found", nil))
		return nil, errs
	}
	return e.Questions(), nil
}

func cellValue(record []string, headerMap map[string]int, column string) string {
	i, ok := headerMap[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "yes", "y", "x":
		return true
	}
	b, _ := strconv.ParseBool(value)
	return b
}

// rowOptions keeps options by column position, blanks included, up to the
// last non-empty option cell.
func rowOptions(record []string, optionCols []int) []string {
	last := -1
	for i, col := range optionCols {
		if col < len(record) && strings.TrimSpace(record[col]) != "" {
			last = i
		}
	}
	options := make([]string, 0, last+1)
	for _, col := range optionCols[:last+1] {
		value := ""
		if col < len(record) {
			value = record[col]
		}
		options = append(options, value)
	}
	return options
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
