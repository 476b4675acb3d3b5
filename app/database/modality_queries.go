package database

import (
	"database/sql"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
)

// GetModalities retrieves all modalities ordered by name.
func GetModalities(db *sql.DB) ([]*models.Modality, error) {
	query := `SELECT id, name, description, price, payment_type, created_at, updated_at
	          FROM modalities ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modalities []*models.Modality
	for rows.Next() {
		m := &models.Modality{}
		var paymentType string
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &paymentType, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.PaymentType = models.ModalityBilling(paymentType)
		modalities = append(modalities, m)
	}
	return modalities, rows.Err()
}

// GetModalityIDByName resolves a modality by its exact name. Spreadsheet
// imports reference modalities by name, not id.
func GetModalityIDByName(db *sql.DB, name string) (string, error) {
	var id string
	err := db.QueryRow(`SELECT id FROM modalities WHERE name = $1`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return id, err
}

// GetModalityByID retrieves a single modality.
func GetModalityByID(db *sql.DB, id string) (*models.Modality, error) {
	query := `SELECT id, name, description, price, payment_type, created_at, updated_at
	          FROM modalities WHERE id = $1`

	m := &models.Modality{}
	var paymentType string
	err := db.QueryRow(query, id).Scan(&m.ID, &m.Name, &m.Description, &m.Price, &paymentType, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.PaymentType = models.ModalityBilling(paymentType)
	return m, nil
}

// CreateModality inserts a modality.
func CreateModality(db *sql.DB, m *models.Modality) error {
	query := `INSERT INTO modalities (name, description, price, payment_type)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`

	return db.QueryRow(query, m.Name, m.Description, m.Price, string(m.PaymentType)).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// UpdateModality updates an existing modality.
func UpdateModality(db *sql.DB, m *models.Modality) error {
	query := `UPDATE modalities SET name = $1, description = $2, price = $3, payment_type = $4, updated_at = NOW()
	          WHERE id = $5`

	result, err := db.Exec(query, m.Name, m.Description, m.Price, string(m.PaymentType), m.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteModality removes a modality. Modalities referenced by students or
// payments are protected; the foreign key violation is surfaced to the
// caller.
func DeleteModality(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM modalities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
