package queries

const (
	// Insert Queries
	CreateReminderQuery = `
		INSERT INTO appointment_reminders (
			appointment_id, reminder_type, hours_before, scheduled_for,
			is_sent, created_at
		) VALUES (
			$1, $2, $3, $4, FALSE, NOW()
		) RETURNING id
	`

	// Select Queries
	FindReminderByIDQuery = `
		SELECT r.id, r.appointment_id, r.reminder_type, r.hours_before,
			r.is_sent, r.sent_at, r.sent_via, r.error_message,
			r.scheduled_for, r.created_at,
			a.user_id, a.patient_name, a.patient_email, a.appointment_date,
			a.appointment_time, a.status, d.name, d.specialization
		FROM appointment_reminders r
		JOIN appointments a ON a.id = r.appointment_id
		JOIN doctors d ON d.id = a.doctor_id
		WHERE r.id = $1
	`

	ListRemindersByAppointmentQuery = `
		SELECT r.id, r.appointment_id, r.reminder_type, r.hours_before,
			r.is_sent, r.sent_at, r.sent_via, r.error_message,
			r.scheduled_for, r.created_at,
			a.user_id, a.patient_name, a.patient_email, a.appointment_date,
			a.appointment_time, a.status, d.name, d.specialization
		FROM appointment_reminders r
		JOIN appointments a ON a.id = r.appointment_id
		JOIN doctors d ON d.id = a.doctor_id
		WHERE r.appointment_id = $1
		ORDER BY r.scheduled_for ASC
	`

	ListUpcomingRemindersQuery = `
		SELECT r.id, r.appointment_id, r.reminder_type, r.hours_before,
			r.is_sent, r.sent_at, r.sent_via, r.error_message,
			r.scheduled_for, r.created_at,
			a.user_id, a.patient_name, a.patient_email, a.appointment_date,
			a.appointment_time, a.status, d.name, d.specialization
		FROM appointment_reminders r
		JOIN appointments a ON a.id = r.appointment_id
		JOIN doctors d ON d.id = a.doctor_id
		WHERE r.is_sent = FALSE
			AND r.scheduled_for > $3
			AND a.status IN ('approved', 'scheduled')
			AND ($1 = '' OR a.user_id::text = $1)
			AND ($2 = '' OR a.doctor_id::text = $2)
		ORDER BY r.scheduled_for ASC
	`

	// FindDueUnsentRemindersQuery selects reminders whose send window has
	// arrived for appointments that are still going to happen. Rows are
	// locked and skipped if another dispatcher holds them.
	FindDueUnsentRemindersQuery = `
		SELECT r.id, r.appointment_id, r.reminder_type, r.hours_before,
			r.is_sent, r.sent_at, r.sent_via, r.error_message,
			r.scheduled_for, r.created_at,
			a.user_id, a.patient_name, a.patient_email, a.appointment_date,
			a.appointment_time, a.status, d.name, d.specialization
		FROM appointment_reminders r
		JOIN appointments a ON a.id = r.appointment_id
		JOIN doctors d ON d.id = a.doctor_id
		WHERE r.is_sent = FALSE
			AND r.error_message = ''
			AND r.scheduled_for <= $1
			AND a.status IN ('pending', 'approved', 'scheduled')
		ORDER BY r.scheduled_for ASC
		LIMIT $2
		FOR UPDATE OF r SKIP LOCKED
	`

	// Update Queries
	MarkReminderSentQuery = `
		UPDATE appointment_reminders
		SET is_sent = TRUE, sent_at = $1, sent_via = $2, error_message = ''
		WHERE id = $3
	`

	MarkReminderFailedQuery = `
		UPDATE appointment_reminders
		SET error_message = $1
		WHERE id = $2
	`

	CancelPendingRemindersByAppointmentQuery = `
		DELETE FROM appointment_reminders
		WHERE appointment_id = $1 AND is_sent = FALSE
	`

	// Delete Queries
	DeleteReminderQuery = `
		DELETE FROM appointment_reminders
		WHERE id = $1
	`
)
