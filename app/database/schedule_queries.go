package database

import (
	"database/sql"
	"fmt"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
)

// GetSchedules lists schedule slots, optionally scoped to one
// physiotherapist's roster or one student.
func GetSchedules(db *sql.DB, physioID, studentID *string) ([]*models.StudentSchedule, error) {
	query := `SELECT sc.id, sc.student_id, sc.weekday, sc.hour, s.name
	          FROM student_schedules sc
	          JOIN students s ON sc.student_id = s.id`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if physioID != nil {
		conditions = append(conditions, fmt.Sprintf("s.physiotherapist_id = $%d", argIndex))
		args = append(args, *physioID)
		argIndex++
	}
	if studentID != nil {
		conditions = append(conditions, fmt.Sprintf("sc.student_id = $%d", argIndex))
		args = append(args, *studentID)
		argIndex++
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY sc.weekday, sc.hour"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*models.StudentSchedule
	for rows.Next() {
		sc := &models.StudentSchedule{}
		if err := rows.Scan(&sc.ID, &sc.StudentID, &sc.Weekday, &sc.Hour, &sc.StudentName); err != nil {
			return nil, err
		}
		schedules = append(schedules, sc)
	}
	return schedules, rows.Err()
}

// GetSchedulesForStudent lists one student's fixed slots.
func GetSchedulesForStudent(db *sql.DB, studentID string) ([]*models.StudentSchedule, error) {
	return GetSchedules(db, nil, &studentID)
}

// StudentHasMonthlyModality reports whether the student exists and is bound
// to a monthly modality. Only those students may hold fixed weekly slots.
func StudentHasMonthlyModality(db *sql.DB, studentID string) (bool, error) {
	var monthly bool
	err := db.QueryRow(
		`SELECT m.payment_type = 'MONTHLY'
		 FROM students s JOIN modalities m ON s.modality_id = m.id
		 WHERE s.id = $1`,
		studentID,
	).Scan(&monthly)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return monthly, nil
}

// CreateSchedule inserts a slot. Duplicate slots for the same student are
// rejected by the unique constraint.
func CreateSchedule(db *sql.DB, sc *models.StudentSchedule) error {
	query := `INSERT INTO student_schedules (student_id, weekday, hour)
	          VALUES ($1, $2, $3) RETURNING id`
	return db.QueryRow(query, sc.StudentID, sc.Weekday, sc.Hour).Scan(&sc.ID)
}

// UpdateSchedule moves a slot.
func UpdateSchedule(db *sql.DB, sc *models.StudentSchedule) error {
	result, err := db.Exec(
		`UPDATE student_schedules SET student_id = $1, weekday = $2, hour = $3 WHERE id = $4`,
		sc.StudentID, sc.Weekday, sc.Hour, sc.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSchedule removes a slot.
func DeleteSchedule(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM student_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
