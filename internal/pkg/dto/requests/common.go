package requests

// QueryParams carries the common list filters parsed from the query string.
type QueryParams struct {
	Page           int
	PageSize       int
	Search         string
	Status         string
	Specialization string
	DateFrom       string
	DateTo         string
	Date           string
	Format         string
	Days           int

	// Filled in by the usecase from the session, never from the client.
	UserID   string
	DoctorID string
}
