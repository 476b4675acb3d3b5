package database

import (
	"database/sql"
	"fmt"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/shopspring/decimal"
)

const studentSelect = `SELECT s.id, s.name, s.email, s.phone, s.date_of_birth, s.registration_date,
	s.active, s.notes, s.payment_type, s.payment_day, s.session_quantity, s.commission,
	s.physiotherapist_id, s.modality_id,
	m.id, m.name, m.description, m.price, m.payment_type, m.created_at, m.updated_at,
	p.id, p.crefito, p.phone, p.specialization, u.first_name, u.last_name
	FROM students s
	LEFT JOIN modalities m ON s.modality_id = m.id
	LEFT JOIN physiotherapists p ON s.physiotherapist_id = p.id
	LEFT JOIN users u ON p.user_id = u.id`

// StudentFilter narrows a student listing. PhysiotherapistID applies role
// scoping; Active is a tri-state query parameter.
type StudentFilter struct {
	PhysiotherapistID *string
	Active            *bool
}

func scanStudent(rows interface {
	Scan(dest ...interface{}) error
}) (*models.Student, error) {
	s := &models.Student{}
	var paymentType string
	var modID, modName, modDescription *string
	var modPaymentType *string
	var modPrice decimal.NullDecimal
	var modCreatedAt, modUpdatedAt sql.NullTime
	var physioID, physioCrefito, physioPhone, physioSpecialization *string
	var physioFirstName, physioLastName *string

	err := rows.Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.DateOfBirth, &s.RegistrationDate,
		&s.Active, &s.Notes, &paymentType, &s.PaymentDay, &s.SessionQuantity, &s.Commission,
		&s.PhysiotherapistID, &s.ModalityID,
		&modID, &modName, &modDescription, &modPrice, &modPaymentType, &modCreatedAt, &modUpdatedAt,
		&physioID, &physioCrefito, &physioPhone, &physioSpecialization, &physioFirstName, &physioLastName,
	)
	if err != nil {
		return nil, err
	}
	s.PaymentType = models.BillingCycle(paymentType)

	if modID != nil {
		s.ModalityDetails = &models.Modality{
			ID:          *modID,
			Name:        *modName,
			Description: *modDescription,
			Price:       modPrice.Decimal,
			PaymentType: models.ModalityBilling(*modPaymentType),
			CreatedAt:   modCreatedAt.Time,
			UpdatedAt:   modUpdatedAt.Time,
		}
	}

	if physioID != nil {
		physio := &models.Physiotherapist{
			ID:             *physioID,
			Crefito:        *physioCrefito,
			Phone:          *physioPhone,
			Specialization: *physioSpecialization,
		}
		if physioFirstName != nil {
			physio.User = &models.User{FirstName: *physioFirstName, LastName: *physioLastName}
		}
		s.PhysiotherapistDetails = physio
	}

	return s, nil
}

// GetStudents lists students with their modality and physiotherapist
// details, applying the filter.
func GetStudents(db *sql.DB, filter StudentFilter) ([]*models.Student, error) {
	query := studentSelect
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.PhysiotherapistID != nil {
		conditions = append(conditions, fmt.Sprintf("s.physiotherapist_id = $%d", argIndex))
		args = append(args, *filter.PhysiotherapistID)
		argIndex++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("s.active = $%d", argIndex))
		args = append(args, *filter.Active)
		argIndex++
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY s.name"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetStudentByID retrieves a single student with details.
func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	row := db.QueryRow(studentSelect+" WHERE s.id = $1", id)
	s, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	schedules, err := GetSchedulesForStudent(db, id)
	if err != nil {
		return nil, err
	}
	s.Schedules = schedules
	return s, nil
}

// CreateStudent inserts a student.
func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (name, email, phone, date_of_birth, active, notes,
	          payment_type, payment_day, session_quantity, commission, physiotherapist_id, modality_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id, registration_date`

	return db.QueryRow(query,
		s.Name, s.Email, s.Phone, s.DateOfBirth, s.Active, s.Notes,
		string(s.PaymentType), s.PaymentDay, s.SessionQuantity, s.Commission,
		s.PhysiotherapistID, s.ModalityID,
	).Scan(&s.ID, &s.RegistrationDate)
}

// UpdateStudent updates an existing student.
func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students SET name = $1, email = $2, phone = $3, date_of_birth = $4,
	          active = $5, notes = $6, payment_type = $7, payment_day = $8,
	          session_quantity = $9, commission = $10, physiotherapist_id = $11, modality_id = $12
	          WHERE id = $13`

	result, err := db.Exec(query,
		s.Name, s.Email, s.Phone, s.DateOfBirth, s.Active, s.Notes,
		string(s.PaymentType), s.PaymentDay, s.SessionQuantity, s.Commission,
		s.PhysiotherapistID, s.ModalityID, s.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteStudent removes a student. Students with payments are protected by
// the foreign key; the violation is surfaced to the caller.
func DeleteStudent(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
