package database

import (
	"database/sql"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
)

// GetUserByEmail retrieves a user and, when present, the linked
// physiotherapist id.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	query := `SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name,
	          u.is_staff, u.is_active, u.created_at, p.id
	          FROM users u
	          LEFT JOIN physiotherapists p ON p.user_id = u.id
	          WHERE u.email = $1 AND u.is_active = true`

	user := &models.User{}
	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.IsStaff, &user.IsActive, &user.CreatedAt, &user.PhysiotherapistID,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by id with the linked physiotherapist id.
func GetUserByID(db *sql.DB, id string) (*models.User, error) {
	query := `SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name,
	          u.is_staff, u.is_active, u.created_at, p.id
	          FROM users u
	          LEFT JOIN physiotherapists p ON p.user_id = u.id
	          WHERE u.id = $1`

	user := &models.User{}
	err := db.QueryRow(query, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.IsStaff, &user.IsActive, &user.CreatedAt, &user.PhysiotherapistID,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a user row. The password must already be hashed.
func CreateUser(db *sql.DB, user *models.User) error {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, is_staff, is_active)
	          VALUES ($1, $2, $3, $4, $5, true)
	          RETURNING id, created_at`

	return db.QueryRow(query, user.Email, user.Password, user.FirstName, user.LastName, user.IsStaff).
		Scan(&user.ID, &user.CreatedAt)
}
