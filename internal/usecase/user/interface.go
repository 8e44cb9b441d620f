package user

import "context"

// Usecase defines the users page operations.
type Usecase interface {
	ListUsers(ctx context.Context, in ListUsersRequest) *ListUsersResponse
}
