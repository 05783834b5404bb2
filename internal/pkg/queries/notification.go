package queries

const (
	// Insert Queries
	CreateNotificationQuery = `
		INSERT INTO notifications (
			user_id, appointment_id, type, title, message, is_read, created_at
		) VALUES (
			$1, NULLIF($2, '')::uuid, $3, $4, $5, FALSE, NOW()
		) RETURNING id
	`

	CreateStatusHistoryQuery = `
		INSERT INTO appointment_status_history (
			appointment_id, old_status, new_status, changed_by, reason, changed_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW()
		) RETURNING id
	`

	// Select Queries
	ListNotificationsByUserQuery = `
		SELECT id, user_id, COALESCE(appointment_id::text, ''), type, title,
			message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	CountNotificationsByUserQuery = `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = $1
	`

	CountUnreadNotificationsQuery = `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = $1 AND is_read = FALSE
	`

	ListStatusHistoryByAppointmentQuery = `
		SELECT h.id, h.appointment_id, h.old_status, h.new_status,
			h.changed_by, COALESCE(u.username, ''), h.reason, h.changed_at
		FROM appointment_status_history h
		LEFT JOIN users u ON u.id = h.changed_by
		WHERE h.appointment_id = $1
		ORDER BY h.changed_at ASC
	`

	// Update Queries
	MarkNotificationReadQuery = `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
	`

	MarkAllNotificationsReadQuery = `
		UPDATE notifications
		SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE
	`
)
