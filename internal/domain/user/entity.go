package user

// User represents one user record as published by the users endpoint.
type User struct {
	ID        int64  // ID is the unique identifier for the user
	FirstName string // FirstName is the given name
	LastName  string // LastName is the family name
	Email     string // Email is the contact email address
	Phone     string // Phone is the contact phone number
	UpdatedAt string // UpdatedAt is the last-updated timestamp, kept as received
}
