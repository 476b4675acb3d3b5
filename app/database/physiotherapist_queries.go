package database

import (
	"database/sql"
	"fmt"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
)

const physiotherapistSelect = `SELECT p.id, p.user_id, p.crefito, p.phone, p.specialization,
	p.created_at, p.updated_at,
	u.id, u.email, u.first_name, u.last_name, u.is_staff, u.is_active, u.created_at
	FROM physiotherapists p
	JOIN users u ON p.user_id = u.id`

func scanPhysiotherapist(row interface {
	Scan(dest ...interface{}) error
}) (*models.Physiotherapist, error) {
	p := &models.Physiotherapist{User: &models.User{}}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Crefito, &p.Phone, &p.Specialization,
		&p.CreatedAt, &p.UpdatedAt,
		&p.User.ID, &p.User.Email, &p.User.FirstName, &p.User.LastName,
		&p.User.IsStaff, &p.User.IsActive, &p.User.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPhysiotherapists lists all physiotherapists with their user details.
func GetPhysiotherapists(db *sql.DB) ([]*models.Physiotherapist, error) {
	rows, err := db.Query(physiotherapistSelect + " ORDER BY u.first_name, u.last_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var physios []*models.Physiotherapist
	for rows.Next() {
		p, err := scanPhysiotherapist(rows)
		if err != nil {
			return nil, err
		}
		physios = append(physios, p)
	}
	return physios, rows.Err()
}

// GetPhysiotherapistByID retrieves one physiotherapist with user details.
func GetPhysiotherapistByID(db *sql.DB, id string) (*models.Physiotherapist, error) {
	p, err := scanPhysiotherapist(db.QueryRow(physiotherapistSelect+" WHERE p.id = $1", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

// CreatePhysiotherapist provisions the user account and the physiotherapist
// row in one transaction. The password must already be hashed.
func CreatePhysiotherapist(db *sql.DB, p *models.Physiotherapist, passwordHash string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO users (email, password_hash, first_name, last_name, is_staff, is_active)
		 VALUES ($1, $2, $3, $4, false, true)
		 RETURNING id, created_at`,
		p.User.Email, passwordHash, p.User.FirstName, p.User.LastName,
	).Scan(&p.User.ID, &p.User.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	p.UserID = p.User.ID
	err = tx.QueryRow(
		`INSERT INTO physiotherapists (user_id, crefito, phone, specialization)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		p.UserID, p.Crefito, p.Phone, p.Specialization,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create physiotherapist: %w", err)
	}

	return tx.Commit()
}

// UpdatePhysiotherapist updates the physiotherapist row and its user row in
// one transaction.
func UpdatePhysiotherapist(db *sql.DB, p *models.Physiotherapist) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE physiotherapists SET crefito = $1, phone = $2, specialization = $3, updated_at = NOW()
		 WHERE id = $4`,
		p.Crefito, p.Phone, p.Specialization, p.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if p.User != nil {
		_, err = tx.Exec(
			`UPDATE users SET email = $1, first_name = $2, last_name = $3
			 WHERE id = (SELECT user_id FROM physiotherapists WHERE id = $4)`,
			p.User.Email, p.User.FirstName, p.User.LastName, p.ID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetPhysiotherapistIDByEmail resolves a physiotherapist through their user
// account email. Used by the spreadsheet import.
func GetPhysiotherapistIDByEmail(db *sql.DB, email string) (string, error) {
	var id string
	err := db.QueryRow(
		`SELECT p.id FROM physiotherapists p JOIN users u ON p.user_id = u.id WHERE u.email = $1`,
		email,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return id, err
}

// DeletePhysiotherapist removes the physiotherapist's user account; the
// physiotherapist row goes with it via the cascade.
func DeletePhysiotherapist(db *sql.DB, id string) error {
	result, err := db.Exec(
		`DELETE FROM users WHERE id = (SELECT user_id FROM physiotherapists WHERE id = $1)`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
