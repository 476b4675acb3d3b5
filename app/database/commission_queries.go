package database

import (
	"database/sql"
	"fmt"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/lib/pq"
)

const commissionSelect = `SELECT cp.id, cp.physiotherapist_id, cp.transfer_date,
	cp.total_commission_due, cp.amount_paid, cp.status, cp.description, cp.created_at,
	p.crefito, u.first_name, u.last_name
	FROM commission_payments cp
	JOIN physiotherapists p ON cp.physiotherapist_id = p.id
	JOIN users u ON p.user_id = u.id`

// CommissionFilter narrows a payout listing.
type CommissionFilter struct {
	PhysiotherapistID *string
	Status            *models.CommissionStatus
}

func scanCommissionPayment(rows interface {
	Scan(dest ...interface{}) error
}) (*models.CommissionPayment, error) {
	cp := &models.CommissionPayment{
		PhysiotherapistDetails: &models.Physiotherapist{User: &models.User{}},
	}
	var status string
	err := rows.Scan(
		&cp.ID, &cp.PhysiotherapistID, &cp.TransferDate,
		&cp.TotalCommissionDue, &cp.AmountPaid, &status, &cp.Description, &cp.CreatedAt,
		&cp.PhysiotherapistDetails.Crefito,
		&cp.PhysiotherapistDetails.User.FirstName,
		&cp.PhysiotherapistDetails.User.LastName,
	)
	if err != nil {
		return nil, err
	}
	cp.Status = models.CommissionStatus(status)
	cp.PhysiotherapistDetails.ID = cp.PhysiotherapistID
	return cp, nil
}

// GetCommissionPayments lists payouts newest first, applying the filter.
func GetCommissionPayments(db *sql.DB, filter CommissionFilter) ([]*models.CommissionPayment, error) {
	query := commissionSelect
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.PhysiotherapistID != nil {
		conditions = append(conditions, fmt.Sprintf("cp.physiotherapist_id = $%d", argIndex))
		args = append(args, *filter.PhysiotherapistID)
		argIndex++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("cp.status = $%d", argIndex))
		args = append(args, string(*filter.Status))
		argIndex++
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY cp.transfer_date DESC, cp.created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []*models.CommissionPayment
	for rows.Next() {
		cp, err := scanCommissionPayment(rows)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, cp := range payouts {
		ids, err := getPayoutPaymentIDs(db, cp.ID)
		if err != nil {
			return nil, err
		}
		cp.PaymentIDs = ids
	}
	return payouts, nil
}

// GetCommissionPaymentByID retrieves one payout with its covered payments.
func GetCommissionPaymentByID(db *sql.DB, id string) (*models.CommissionPayment, error) {
	cp, err := scanCommissionPayment(db.QueryRow(commissionSelect+" WHERE cp.id = $1", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	cp.PaymentIDs, err = getPayoutPaymentIDs(db, id)
	return cp, err
}

func getPayoutPaymentIDs(db *sql.DB, payoutID string) ([]string, error) {
	rows, err := db.Query(
		`SELECT payment_id FROM commission_payment_payments WHERE commission_payment_id = $1`, payoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateCommissionPayment inserts the payout and attaches its covered
// payments in one transaction. Attached payments stop counting towards
// commission due.
func CreateCommissionPayment(db *sql.DB, cp *models.CommissionPayment) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO commission_payments (physiotherapist_id, transfer_date, total_commission_due, amount_paid, status, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		cp.PhysiotherapistID, cp.TransferDate, cp.TotalCommissionDue, cp.AmountPaid,
		string(models.CommissionAwaitingApproval), cp.Description,
	).Scan(&cp.ID, &cp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create commission payment: %w", err)
	}
	cp.Status = models.CommissionAwaitingApproval

	if len(cp.PaymentIDs) > 0 {
		_, err = tx.Exec(
			`INSERT INTO commission_payment_payments (commission_payment_id, payment_id)
			 SELECT $1, unnest($2::uuid[])`,
			cp.ID, pq.Array(cp.PaymentIDs),
		)
		if err != nil {
			return fmt.Errorf("failed to attach payments: %w", err)
		}
	}

	return tx.Commit()
}

// ApproveCommissionPayment flips a payout to approved. The status check and
// the flip are a single compare-and-set so concurrent approvals cannot both
// succeed.
func ApproveCommissionPayment(db *sql.DB, id string) error {
	result, err := db.Exec(
		`UPDATE commission_payments SET status = $1 WHERE id = $2 AND status = $3`,
		string(models.CommissionApproved), id, string(models.CommissionAwaitingApproval),
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return nil
	}

	// Nothing flipped: either the payout does not exist or it was already
	// approved.
	var status string
	err = db.QueryRow(`SELECT status FROM commission_payments WHERE id = $1`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyApproved
}

// DeleteCommissionPayment removes a payout still awaiting approval,
// releasing its payments back into the commission due pool. Approved
// payouts are immutable.
func DeleteCommissionPayment(db *sql.DB, id string) error {
	result, err := db.Exec(
		`DELETE FROM commission_payments WHERE id = $1 AND status = $2`,
		id, string(models.CommissionAwaitingApproval),
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return nil
	}

	var status string
	err = db.QueryRow(`SELECT status FROM commission_payments WHERE id = $1`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyApproved
}
