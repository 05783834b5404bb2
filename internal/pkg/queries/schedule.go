package queries

const (
	// Select Queries
	ListSchedulesByDoctorQuery = `
		SELECT id, doctor_id, day_of_week, start_time, end_time,
			is_available, max_appointments, slot_duration
		FROM doctor_schedules
		WHERE doctor_id = $1
	`

	FindScheduleByDoctorAndDayQuery = `
		SELECT id, doctor_id, day_of_week, start_time, end_time,
			is_available, max_appointments, slot_duration
		FROM doctor_schedules
		WHERE doctor_id = $1 AND day_of_week = $2
	`

	// Upsert Queries
	UpsertScheduleQuery = `
		INSERT INTO doctor_schedules (
			doctor_id, day_of_week, start_time, end_time,
			is_available, max_appointments, slot_duration
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (doctor_id, day_of_week) DO UPDATE
		SET start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_available = EXCLUDED.is_available,
			max_appointments = EXCLUDED.max_appointments,
			slot_duration = EXCLUDED.slot_duration
	`

	// Insert Queries
	CreateTimeBlockQuery = `
		INSERT INTO time_blocks (
			doctor_id, start_at, end_at, reason, is_recurring, created_at
		) VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`

	// Select Queries
	FindTimeBlockByIDQuery = `
		SELECT id, doctor_id, start_at, end_at, reason, is_recurring, created_at
		FROM time_blocks
		WHERE id = $1
	`

	ListTimeBlocksQuery = `
		SELECT id, doctor_id, start_at, end_at, reason, is_recurring, created_at
		FROM time_blocks
		WHERE doctor_id = $1 AND end_at >= $2
		ORDER BY start_at ASC
	`

	ListTimeBlocksForDateQuery = `
		SELECT id, doctor_id, start_at, end_at, reason, is_recurring, created_at
		FROM time_blocks
		WHERE doctor_id = $1
			AND start_at < $3
			AND end_at > $2
		ORDER BY start_at ASC
	`

	// Delete Queries
	DeleteTimeBlockQuery = `
		DELETE FROM time_blocks
		WHERE id = $1
	`
)
