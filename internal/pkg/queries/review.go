package queries

const (
	// Insert Queries
	CreateReviewQuery = `
		INSERT INTO reviews (
			doctor_id, patient_id, appointment_id, rating, title, comment,
			is_approved, is_featured, helpful_count, not_helpful_count,
			created_at, updated_at
		) VALUES (
			$1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, FALSE, 0, 0, NOW(), NOW()
		) RETURNING id
	`

	// Select Queries
	FindReviewByIDQuery = `
		SELECT r.id, r.doctor_id, r.patient_id, r.appointment_id, r.rating,
			r.title, r.comment, r.is_approved, r.is_featured,
			r.helpful_count, r.not_helpful_count, r.created_at, r.updated_at,
			u.username, d.name
		FROM reviews r
		JOIN users u ON u.id = r.patient_id
		JOIN doctors d ON d.id = r.doctor_id
		WHERE r.id = $1
	`

	FindReviewByDoctorAndUserQuery = `
		SELECT r.id, r.doctor_id, r.patient_id, r.appointment_id, r.rating,
			r.title, r.comment, r.is_approved, r.is_featured,
			r.helpful_count, r.not_helpful_count, r.created_at, r.updated_at,
			u.username, d.name
		FROM reviews r
		JOIN users u ON u.id = r.patient_id
		JOIN doctors d ON d.id = r.doctor_id
		WHERE r.doctor_id = $1 AND r.patient_id = $2
	`

	ListReviewsByDoctorQuery = `
		SELECT r.id, r.doctor_id, r.patient_id, r.appointment_id, r.rating,
			r.title, r.comment, r.is_approved, r.is_featured,
			r.helpful_count, r.not_helpful_count, r.created_at, r.updated_at,
			u.username, d.name
		FROM reviews r
		JOIN users u ON u.id = r.patient_id
		JOIN doctors d ON d.id = r.doctor_id
		WHERE r.doctor_id = $1 AND r.is_approved = TRUE
		ORDER BY r.is_featured DESC, r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	ListReviewsByPatientQuery = `
		SELECT r.id, r.doctor_id, r.patient_id, r.appointment_id, r.rating,
			r.title, r.comment, r.is_approved, r.is_featured,
			r.helpful_count, r.not_helpful_count, r.created_at, r.updated_at,
			u.username, d.name
		FROM reviews r
		JOIN users u ON u.id = r.patient_id
		JOIN doctors d ON d.id = r.doctor_id
		WHERE r.patient_id = $1
		ORDER BY r.created_at DESC
	`

	CountReviewsByDoctorQuery = `
		SELECT COUNT(*)
		FROM reviews
		WHERE doctor_id = $1 AND is_approved = TRUE
	`

	// RatingAggregatesQuery feeds the denormalized columns on doctors and
	// the per-star distribution on the doctor detail page. Only approved
	// reviews count.
	RatingAggregatesQuery = `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE doctor_id = $1 AND is_approved = TRUE
	`

	RatingDistributionQuery = `
		SELECT rating, COUNT(*)
		FROM reviews
		WHERE doctor_id = $1 AND is_approved = TRUE
		GROUP BY rating
	`

	// Update Queries
	UpdateReviewQuery = `
		UPDATE reviews
		SET rating = $1, title = $2, comment = $3, is_approved = $4,
			is_featured = $5, updated_at = NOW()
		WHERE id = $6
	`

	IncrementReviewHelpfulQuery = `
		UPDATE reviews
		SET helpful_count = helpful_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	IncrementReviewNotHelpfulQuery = `
		UPDATE reviews
		SET not_helpful_count = not_helpful_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	// Delete Queries
	DeleteReviewQuery = `
		DELETE FROM reviews
		WHERE id = $1
	`
)
