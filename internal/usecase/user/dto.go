package user

// ListUsersRequest selects the page of the users table to render.
// Page values out of range are clamped; zero means the first page.
type ListUsersRequest struct {
	Page int
}

// ListUsersResponse is the render input of the users page.
//
// StatusCode is 200 when the users endpoint was read successfully. Otherwise
// it carries the upstream status (or 500 for transport failures), Users is
// empty and Pagination describes an empty table.
type ListUsersResponse struct {
	StatusCode int
	Users      []User
	Pagination Pagination
}

// OK reports whether the table should be rendered.
func (r *ListUsersResponse) OK() bool {
	return r.StatusCode == 200
}

// Pagination represents the page state and the targets of every navigation control.
type Pagination struct {
	Total        int
	Page         int
	Limit        int
	TotalPages   int
	VisiblePages []int
	HasPrev      bool
	HasNext      bool
	FirstPage    int
	PrevPage     int
	NextPage     int
	LastPage     int
}

// User represents a user DTO (Data Transfer Object) for rendering.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	UpdatedAt string
}
