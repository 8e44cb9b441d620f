package directory

// CreateUserRequest represents the request to add a user to the directory
type CreateUserRequest struct {
	FirstName string `validate:"required,min=1,max=100,personname"`
	LastName  string `validate:"required,min=1,max=100,personname"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"required,max=32,phone"`
}

// GetUserRequest represents the request to get a user by ID
type GetUserRequest struct {
	ID int64
}
