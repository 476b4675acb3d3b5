package database

import (
	"database/sql"
	"fmt"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
)

const paymentSelect = `SELECT pay.id, pay.student_id, pay.modality_id, pay.amount,
	pay.payment_date, pay.reference_month, pay.created_at,
	s.name, m.name, m.price, m.payment_type
	FROM payments pay
	JOIN students s ON pay.student_id = s.id
	JOIN modalities m ON pay.modality_id = m.id`

// PaymentFilter narrows a payment listing.
type PaymentFilter struct {
	StudentID         *string
	PhysiotherapistID *string
}

func scanPayment(rows interface {
	Scan(dest ...interface{}) error
}) (*models.Payment, error) {
	p := &models.Payment{
		StudentDetails:  &models.Student{},
		ModalityDetails: &models.Modality{},
	}
	var modPaymentType string
	err := rows.Scan(
		&p.ID, &p.StudentID, &p.ModalityID, &p.Amount,
		&p.PaymentDate, &p.ReferenceMonth, &p.CreatedAt,
		&p.StudentDetails.Name, &p.ModalityDetails.Name, &p.ModalityDetails.Price, &modPaymentType,
	)
	if err != nil {
		return nil, err
	}
	p.StudentDetails.ID = p.StudentID
	p.ModalityDetails.ID = p.ModalityID
	p.ModalityDetails.PaymentType = models.ModalityBilling(modPaymentType)
	return p, nil
}

// GetPayments lists payments newest first, applying the filter.
func GetPayments(db *sql.DB, filter PaymentFilter) ([]*models.Payment, error) {
	query := paymentSelect
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.StudentID != nil {
		conditions = append(conditions, fmt.Sprintf("pay.student_id = $%d", argIndex))
		args = append(args, *filter.StudentID)
		argIndex++
	}
	if filter.PhysiotherapistID != nil {
		conditions = append(conditions, fmt.Sprintf("s.physiotherapist_id = $%d", argIndex))
		args = append(args, *filter.PhysiotherapistID)
		argIndex++
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY pay.payment_date DESC, pay.created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GetPaymentByID retrieves one payment with student and modality details.
func GetPaymentByID(db *sql.DB, id string) (*models.Payment, error) {
	p, err := scanPayment(db.QueryRow(paymentSelect+" WHERE pay.id = $1", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

// CreatePayment appends a payment to the ledger.
func CreatePayment(db *sql.DB, p *models.Payment) error {
	query := `INSERT INTO payments (student_id, modality_id, amount, payment_date, reference_month)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`

	return db.QueryRow(query, p.StudentID, p.ModalityID, p.Amount, p.PaymentDate, p.ReferenceMonth).
		Scan(&p.ID, &p.CreatedAt)
}

// UpdatePayment corrects an existing payment. Payments already covered by a
// commission payout must not change; the caller checks that first.
func UpdatePayment(db *sql.DB, p *models.Payment) error {
	result, err := db.Exec(
		`UPDATE payments SET student_id = $1, modality_id = $2, amount = $3,
		 payment_date = $4, reference_month = $5 WHERE id = $6`,
		p.StudentID, p.ModalityID, p.Amount, p.PaymentDate, p.ReferenceMonth, p.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// PaymentInPayout reports whether the payment is attached to a commission
// payout.
func PaymentInPayout(db *sql.DB, paymentID string) (bool, error) {
	var in bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM commission_payment_payments WHERE payment_id = $1)`,
		paymentID,
	).Scan(&in)
	return in, err
}

// DeletePayment removes a payment. Payments attached to a commission payout
// are protected by the join table's foreign key.
func DeletePayment(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// StudentOwnedBy reports whether the student belongs to the given
// physiotherapist. Used to scope writes for non-staff actors.
func StudentOwnedBy(db *sql.DB, studentID, physioID string) (bool, error) {
	var owned bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM students WHERE id = $1 AND physiotherapist_id = $2)`,
		studentID, physioID,
	).Scan(&owned)
	return owned, err
}
