package queries

const (
	// Insert Queries
	CreateDoctorQuery = `
		INSERT INTO doctors (
			user_id, name, specialization, email, phone, is_active,
			consultation_fee, experience_years, description, affiliation,
			license_number, profile_picture_name, average_rating, total_reviews, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, '', 0, 0, NOW(), NOW()
		) RETURNING id
	`

	// Select Queries
	FindDoctorByFieldQueryTemplate = `
		SELECT id, user_id, name, specialization, email, phone, is_active,
			consultation_fee, experience_years, description, affiliation,
			license_number, profile_picture_name, average_rating, total_reviews, created_at, updated_at
		FROM doctors
		WHERE %s = $1
	`

	// FindDoctorsQuery filters by optional search term and specialization,
	// paginated. Empty string parameters disable the matching filter.
	FindDoctorsQuery = `
		SELECT id, user_id, name, specialization, email, phone, is_active,
			consultation_fee, experience_years, description, affiliation,
			license_number, profile_picture_name, average_rating, total_reviews, created_at, updated_at
		FROM doctors
		WHERE is_active = TRUE
			AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR specialization ILIKE '%' || $1 || '%')
			AND ($2 = '' OR specialization = $2)
		ORDER BY name ASC
		LIMIT $3 OFFSET $4
	`

	CountDoctorsQuery = `
		SELECT COUNT(*)
		FROM doctors
		WHERE is_active = TRUE
			AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR specialization ILIKE '%' || $1 || '%')
			AND ($2 = '' OR specialization = $2)
	`

	ListSpecializationsQuery = `
		SELECT DISTINCT specialization
		FROM doctors
		WHERE is_active = TRUE AND specialization <> ''
		ORDER BY specialization ASC
	`

	// Update Queries
	UpdateDoctorQuery = `
		UPDATE doctors
		SET name = $1, specialization = $2, email = $3, phone = $4,
			consultation_fee = $5, experience_years = $6, description = $7,
			affiliation = $8, license_number = $9, updated_at = NOW()
		WHERE id = $10
	`

	UpdateDoctorRatingAggregatesQuery = `
		UPDATE doctors
		SET average_rating = $1, total_reviews = $2, updated_at = NOW()
		WHERE id = $3
	`

	SetDoctorActiveQuery = `
		UPDATE doctors
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2
	`

	SetDoctorProfilePictureQuery = `
		UPDATE doctors
		SET profile_picture_name = $1, updated_at = NOW()
		WHERE id = $2
	`
)
