package queries

const (
	CountAppointmentsByStatusQuery = `
		SELECT status, COUNT(*)
		FROM appointments
		WHERE created_at::date >= $1 AND created_at::date <= $2
			AND ($3 = '' OR doctor_id::text = $3)
		GROUP BY status
	`

	DailyTrendsQuery = `
		SELECT created_at::date,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled')
		FROM appointments
		WHERE created_at::date >= $1 AND created_at::date <= $2
			AND ($3 = '' OR doctor_id::text = $3)
		GROUP BY created_at::date
		ORDER BY created_at::date ASC
	`

	TopDoctorsQuery = `
		SELECT d.id, d.name, d.specialization, COUNT(a.id), d.average_rating
		FROM doctors d
		JOIN appointments a ON a.doctor_id = d.id
		WHERE a.created_at::date >= $1 AND a.created_at::date <= $2
		GROUP BY d.id, d.name, d.specialization, d.average_rating
		ORDER BY COUNT(a.id) DESC
		LIMIT $3
	`

	CountAppointmentsByPriorityQuery = `
		SELECT priority, COUNT(*)
		FROM appointments
		WHERE created_at::date >= $1 AND created_at::date <= $2
			AND ($3 = '' OR doctor_id::text = $3)
		GROUP BY priority
	`

	CountNewPatientsQuery = `
		SELECT COUNT(*)
		FROM users
		WHERE role = 'patient'
			AND created_at >= $1 AND created_at <= $2
			AND deleted_at IS NULL
	`
)
