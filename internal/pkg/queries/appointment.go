package queries

const (
	// Insert Queries
	CreateAppointmentQuery = `
		INSERT INTO appointments (
			doctor_id, user_id, patient_name, patient_email, patient_phone,
			appointment_date, appointment_time, status, priority, reason, notes,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		) RETURNING id
	`

	// Select Queries
	FindAppointmentByIDQuery = `
		SELECT a.id, a.doctor_id, a.user_id, a.patient_name, a.patient_email,
			a.patient_phone, a.appointment_date, a.appointment_time, a.status,
			a.priority, a.reason, a.notes, a.cancellation_reason,
			a.confirmed_at, a.completed_at, a.created_at, a.updated_at,
			d.name, d.specialization
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		WHERE a.id = $1
	`

	// SearchAppointmentsQuery filters by owner, status, free-text search and
	// date range. Empty parameters disable the matching filter; $1/$2 scope
	// the listing to a patient or a doctor.
	SearchAppointmentsQuery = `
		SELECT a.id, a.doctor_id, a.user_id, a.patient_name, a.patient_email,
			a.patient_phone, a.appointment_date, a.appointment_time, a.status,
			a.priority, a.reason, a.notes, a.cancellation_reason,
			a.confirmed_at, a.completed_at, a.created_at, a.updated_at,
			d.name, d.specialization
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		WHERE ($1 = '' OR a.user_id = $1::uuid)
			AND ($2 = '' OR a.doctor_id = $2::uuid)
			AND ($3 = '' OR a.status = $3)
			AND ($4 = '' OR a.patient_name ILIKE '%' || $4 || '%'
				OR d.name ILIKE '%' || $4 || '%'
				OR a.reason ILIKE '%' || $4 || '%')
			AND ($5 = '' OR a.appointment_date >= $5::date)
			AND ($6 = '' OR a.appointment_date <= $6::date)
		ORDER BY a.appointment_date DESC, a.appointment_time DESC
		LIMIT $7 OFFSET $8
	`

	CountAppointmentsQuery = `
		SELECT COUNT(*)
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		WHERE ($1 = '' OR a.user_id = $1::uuid)
			AND ($2 = '' OR a.doctor_id = $2::uuid)
			AND ($3 = '' OR a.status = $3)
			AND ($4 = '' OR a.patient_name ILIKE '%' || $4 || '%'
				OR d.name ILIKE '%' || $4 || '%'
				OR a.reason ILIKE '%' || $4 || '%')
			AND ($5 = '' OR a.appointment_date >= $5::date)
			AND ($6 = '' OR a.appointment_date <= $6::date)
	`

	FindUpcomingAppointmentsQuery = `
		SELECT a.id, a.doctor_id, a.user_id, a.patient_name, a.patient_email,
			a.patient_phone, a.appointment_date, a.appointment_time, a.status,
			a.priority, a.reason, a.notes, a.cancellation_reason,
			a.confirmed_at, a.completed_at, a.created_at, a.updated_at,
			d.name, d.specialization
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		WHERE ($1 = '' OR a.user_id = $1::uuid)
			AND ($2 = '' OR a.doctor_id = $2::uuid)
			AND a.status IN ('approved', 'scheduled')
			AND (a.appointment_date + a.appointment_time::time) >= $3
		ORDER BY a.appointment_date ASC, a.appointment_time ASC
		LIMIT $4
	`

	ExistsActiveSlotQuery = `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
				AND appointment_date = $2
				AND appointment_time = $3
				AND status IN ('pending', 'approved', 'scheduled')
				AND ($4 = '' OR id <> $4::uuid)
		)
	`

	ListBookedTimesQuery = `
		SELECT appointment_time
		FROM appointments
		WHERE doctor_id = $1
			AND appointment_date = $2
			AND status IN ('pending', 'approved', 'scheduled')
	`

	CountActiveForDateQuery = `
		SELECT COUNT(*)
		FROM appointments
		WHERE doctor_id = $1
			AND appointment_date = $2
			AND status IN ('pending', 'approved', 'scheduled')
	`

	FindCompletedAppointmentQuery = `
		SELECT id
		FROM appointments
		WHERE user_id = $1 AND doctor_id = $2 AND status = 'completed'
		ORDER BY appointment_date DESC
		LIMIT 1
	`

	// Update Queries
	UpdateAppointmentQuery = `
		UPDATE appointments
		SET appointment_date = $1, appointment_time = $2, status = $3,
			priority = $4, reason = $5, notes = $6, cancellation_reason = $7,
			confirmed_at = $8, completed_at = $9, updated_at = NOW()
		WHERE id = $10
	`
)
