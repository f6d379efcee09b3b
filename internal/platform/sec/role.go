// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// RoleAdmin may add and delete books.
	RoleAdmin UserRole = "admin"

	// RoleReader is the default role for registered library users.
	RoleReader UserRole = "user"
)
