package queries

const (
	// Insert Queries
	CreateUserQuery = `
		INSERT INTO users (
			username, email, password, role, phone, date_of_birth, address,
			profile_picture_name, email_notifications, sms_notifications,
			email_verified, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()
		) RETURNING id
	`

	// Select Queries
	FindUserByFieldQueryTemplate = `
		SELECT id, username, email, password, role, phone, date_of_birth, address,
			profile_picture_name, email_notifications, sms_notifications,
			email_verified, is_active, created_at, updated_at
		FROM users
		WHERE %s = $1 AND deleted_at IS NULL
	`

	FindUserByEmailOrUsernameQuery = `
		SELECT id, username, email, password, role, phone, date_of_birth, address,
			profile_picture_name, email_notifications, sms_notifications,
			email_verified, is_active, created_at, updated_at
		FROM users
		WHERE (email = $1 OR username = $2) AND deleted_at IS NULL
	`

	// Update Queries
	UpdateUserQuery = `
		UPDATE users
		SET username = $1, email = $2, password = $3, role = $4, phone = $5,
			date_of_birth = $6, address = $7, profile_picture_name = $8,
			email_notifications = $9, sms_notifications = $10,
			email_verified = $11, is_active = $12, updated_at = NOW()
		WHERE id = $13 AND deleted_at IS NULL
	`
)
