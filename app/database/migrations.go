package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates missing tables and applies schema updates.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			is_staff BOOLEAN NOT NULL DEFAULT false,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS physiotherapists (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			crefito VARCHAR(20) NOT NULL UNIQUE,
			phone VARCHAR(20) NOT NULL DEFAULT '',
			specialization VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS modalities (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL,
			payment_type VARCHAR(10) NOT NULL DEFAULT 'MONTHLY',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT modalities_payment_type_check CHECK (payment_type IN ('MONTHLY', 'SESSION'))
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255),
			phone VARCHAR(20),
			date_of_birth DATE,
			registration_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			active BOOLEAN NOT NULL DEFAULT true,
			notes TEXT,
			payment_type VARCHAR(3) NOT NULL DEFAULT 'PRE',
			payment_day INTEGER,
			session_quantity INTEGER,
			commission NUMERIC(5,2) NOT NULL DEFAULT 50.00,
			physiotherapist_id UUID REFERENCES physiotherapists(id) ON DELETE SET NULL,
			modality_id UUID REFERENCES modalities(id) ON DELETE RESTRICT,
			CONSTRAINT students_payment_type_check CHECK (payment_type IN ('PRE', 'POS')),
			CONSTRAINT students_payment_day_check CHECK (payment_day IS NULL OR (payment_day >= 1 AND payment_day <= 31)),
			CONSTRAINT students_commission_check CHECK (commission >= 0 AND commission <= 100)
		)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE RESTRICT,
			modality_id UUID NOT NULL REFERENCES modalities(id) ON DELETE RESTRICT,
			amount NUMERIC(10,2) NOT NULL,
			payment_date DATE NOT NULL,
			reference_month DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS payments_student_idx ON payments(student_id)`,
		`CREATE INDEX IF NOT EXISTS payments_payment_date_idx ON payments(payment_date)`,
		`CREATE INDEX IF NOT EXISTS payments_reference_month_idx ON payments(reference_month)`,

		`CREATE TABLE IF NOT EXISTS student_schedules (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			weekday INTEGER NOT NULL,
			hour INTEGER NOT NULL,
			CONSTRAINT student_schedules_weekday_check CHECK (weekday >= 0 AND weekday <= 6),
			CONSTRAINT student_schedules_hour_check CHECK (hour >= 6 AND hour <= 21),
			CONSTRAINT student_schedules_slot_unique UNIQUE (student_id, weekday, hour)
		)`,

		`CREATE TABLE IF NOT EXISTS commission_payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			physiotherapist_id UUID NOT NULL REFERENCES physiotherapists(id) ON DELETE RESTRICT,
			transfer_date DATE NOT NULL,
			total_commission_due NUMERIC(10,2) NOT NULL,
			amount_paid NUMERIC(10,2) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'awaiting_approval',
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT commission_payments_status_check CHECK (status IN ('awaiting_approval', 'approved'))
		)`,

		`CREATE TABLE IF NOT EXISTS commission_payment_payments (
			commission_payment_id UUID NOT NULL REFERENCES commission_payments(id) ON DELETE CASCADE,
			payment_id UUID NOT NULL REFERENCES payments(id) ON DELETE RESTRICT,
			PRIMARY KEY (commission_payment_id, payment_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
