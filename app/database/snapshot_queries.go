package database

import (
	"database/sql"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/carlosmourajunior/FisioPilatesApp/app/services"
	"github.com/shopspring/decimal"
)

// LoadSnapshot reads the roster, the payment ledger, and the payout ledger
// into memory for the reconciliation engine. Everything the engine needs is
// gathered here so a report is computed over one consistent read.
func LoadSnapshot(db *sql.DB) (*services.Snapshot, error) {
	snap := &services.Snapshot{}

	rows, err := db.Query(
		`SELECT s.id, s.name, s.active, s.registration_date, s.payment_type,
		 s.payment_day, s.session_quantity, s.commission, s.physiotherapist_id,
		 m.id, m.name, m.price, m.payment_type
		 FROM students s
		 LEFT JOIN modalities m ON s.modality_id = m.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry services.RosterEntry
		var paymentType string
		var modID, modName, modBilling *string
		var modPrice decimal.NullDecimal

		err := rows.Scan(
			&entry.ID, &entry.Name, &entry.Active, &entry.RegistrationDate, &paymentType,
			&entry.PaymentDay, &entry.SessionQuantity, &entry.Commission, &entry.PhysiotherapistID,
			&modID, &modName, &modPrice, &modBilling,
		)
		if err != nil {
			return nil, err
		}
		entry.PaymentType = models.BillingCycle(paymentType)
		if modID != nil {
			entry.HasModality = true
			entry.ModalityID = *modID
			entry.ModalityName = *modName
			entry.ModalityBilling = models.ModalityBilling(*modBilling)
			entry.ModalityPrice = modPrice.Decimal
		}
		snap.Students = append(snap.Students, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	payRows, err := db.Query(
		`SELECT p.id, p.student_id, p.amount, p.payment_date, p.reference_month,
		 EXISTS (SELECT 1 FROM commission_payment_payments cpp WHERE cpp.payment_id = p.id)
		 FROM payments p`)
	if err != nil {
		return nil, err
	}
	defer payRows.Close()

	for payRows.Next() {
		var record services.PaymentRecord
		err := payRows.Scan(
			&record.ID, &record.StudentID, &record.Amount, &record.PaymentDate,
			&record.ReferenceMonth, &record.InPayout,
		)
		if err != nil {
			return nil, err
		}
		snap.Payments = append(snap.Payments, record)
	}
	if err := payRows.Err(); err != nil {
		return nil, err
	}

	payoutRows, err := db.Query(
		`SELECT id, physiotherapist_id, transfer_date, amount_paid, status
		 FROM commission_payments`)
	if err != nil {
		return nil, err
	}
	defer payoutRows.Close()

	for payoutRows.Next() {
		var record services.PayoutRecord
		var status string
		err := payoutRows.Scan(
			&record.ID, &record.PhysiotherapistID, &record.TransferDate,
			&record.AmountPaid, &status,
		)
		if err != nil {
			return nil, err
		}
		record.Status = models.CommissionStatus(status)
		snap.Payouts = append(snap.Payouts, record)
	}
	if err := payoutRows.Err(); err != nil {
		return nil, err
	}

	physioRows, err := db.Query(
		`SELECT p.id, u.first_name || ' ' || u.last_name
		 FROM physiotherapists p
		 JOIN users u ON p.user_id = u.id
		 ORDER BY u.first_name, u.last_name`)
	if err != nil {
		return nil, err
	}
	defer physioRows.Close()

	for physioRows.Next() {
		var ref services.PhysiotherapistRef
		if err := physioRows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		snap.Physiotherapists = append(snap.Physiotherapists, ref)
	}
	return snap, physioRows.Err()
}
