package students

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/carlosmourajunior/FisioPilatesApp/app/database"
	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var importColumns = []string{
	"Name", "Email", "Phone", "Date of Birth", "Payment Type",
	"Payment Day", "Session Quantity", "Commission", "Modality", "Physiotherapist Email",
}

// importRow is one parsed spreadsheet line before database resolution.
type importRow struct {
	Line         int
	Student      *models.Student
	ModalityName string
	PhysioEmail  string
}

// RowError reports why a spreadsheet line was rejected.
type RowError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// parseImportRows validates spreadsheet rows into students. The first row
// is the header; blank lines are skipped. Database references (modality,
// physiotherapist) are resolved later so parsing stays testable offline.
func parseImportRows(rows [][]string) ([]importRow, []RowError) {
	var parsed []importRow
	var rowErrors []RowError

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		line := i + 1

		blank := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}

		name := cell(row, 0)
		if name == "" {
			rowErrors = append(rowErrors, RowError{line, "name is required"})
			continue
		}

		paymentType := strings.ToUpper(cell(row, 4))
		if paymentType != string(models.BillingPrePaid) && paymentType != string(models.BillingPostPaid) {
			rowErrors = append(rowErrors, RowError{line, "payment type must be PRE or POS"})
			continue
		}

		s := &models.Student{
			Name:        name,
			Active:      true,
			PaymentType: models.BillingCycle(paymentType),
			Commission:  decimal.NewFromInt(50),
		}
		if v := cell(row, 1); v != "" {
			s.Email = &v
		}
		if v := cell(row, 2); v != "" {
			s.Phone = &v
		}
		if v := cell(row, 3); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				rowErrors = append(rowErrors, RowError{line, "date of birth must be YYYY-MM-DD"})
				continue
			}
			s.DateOfBirth = &t
		}
		if v := cell(row, 5); v != "" {
			day, err := strconv.Atoi(v)
			if err != nil || day < 1 || day > 31 {
				rowErrors = append(rowErrors, RowError{line, "payment day must be between 1 and 31"})
				continue
			}
			s.PaymentDay = &day
		}
		if v := cell(row, 6); v != "" {
			qty, err := strconv.Atoi(v)
			if err != nil || qty < 0 {
				rowErrors = append(rowErrors, RowError{line, "session quantity must be a non-negative number"})
				continue
			}
			s.SessionQuantity = &qty
		}
		if v := cell(row, 7); v != "" {
			commission, err := decimal.NewFromString(v)
			if err != nil || commission.IsNegative() || commission.GreaterThan(decimal.NewFromInt(100)) {
				rowErrors = append(rowErrors, RowError{line, "commission must be between 0 and 100"})
				continue
			}
			s.Commission = commission
		}

		parsed = append(parsed, importRow{
			Line:         line,
			Student:      s,
			ModalityName: cell(row, 8),
			PhysioEmail:  cell(row, 9),
		})
	}

	return parsed, rowErrors
}

// ImportTemplateAPI serves an empty spreadsheet with the expected import
// columns.
func ImportTemplateAPI(c *fiber.Ctx) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, col := range importColumns {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build template")
		}
		if err := f.SetCellValue(sheet, cellName, col); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build template")
		}
	}
	f.SetColWidth(sheet, "A", "J", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build template")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="students_import_template.xlsx"`)
	return c.Send(buf.Bytes())
}

// ImportStudentsAPI loads students from an uploaded spreadsheet. Rows are
// processed independently; the response reports how many were created and
// why the rest were rejected.
func ImportStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	actor := auth.CurrentActor(c)
	if !actor.IsStaff && actor.PhysiotherapistID == nil {
		return fiber.NewError(fiber.StatusForbidden, "No physiotherapist profile linked to this account")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing file upload")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to open uploaded file")
	}
	defer file.Close()

	xlsx, err := excelize.OpenReader(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File is not a valid spreadsheet")
	}
	defer xlsx.Close()

	rows, err := xlsx.GetRows(xlsx.GetSheetName(0))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to read spreadsheet rows")
	}

	parsed, rowErrors := parseImportRows(rows)
	batchID := uuid.NewString()

	created := 0
	for _, row := range parsed {
		student := row.Student

		if row.ModalityName != "" {
			modalityID, err := database.GetModalityIDByName(db, row.ModalityName)
			if err != nil {
				rowErrors = append(rowErrors, RowError{row.Line, fmt.Sprintf("unknown modality %q", row.ModalityName)})
				continue
			}
			student.ModalityID = &modalityID
		}

		if !actor.IsStaff {
			student.PhysiotherapistID = actor.PhysiotherapistID
		} else if row.PhysioEmail != "" {
			physioID, err := database.GetPhysiotherapistIDByEmail(db, row.PhysioEmail)
			if err != nil {
				rowErrors = append(rowErrors, RowError{row.Line, fmt.Sprintf("unknown physiotherapist %q", row.PhysioEmail)})
				continue
			}
			student.PhysiotherapistID = &physioID
		}

		if err := database.CreateStudent(db, student); err != nil {
			rowErrors = append(rowErrors, RowError{row.Line, "failed to save student"})
			continue
		}
		created++
	}

	log.Printf("students import %s by %s: %d created, %d rejected", batchID, actor.Email, created, len(rowErrors))
	for _, rowErr := range rowErrors {
		log.Printf("students import %s: line %d: %s", batchID, rowErr.Line, rowErr.Error)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"batch_id": batchID,
			"created":  created,
			"errors":   rowErrors,
		},
	})
}
