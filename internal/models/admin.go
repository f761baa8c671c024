package models

import "time"

// Admin is an operator account. Only approved admins can read cohort and participant data.
type Admin struct {
	ID          string    `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	Name        string    `db:"name" json:"name"`
	IsApproved  bool      `db:"is_approved" json:"is_approved"`
	IsMainAdmin bool      `db:"is_main_admin" json:"is_main_admin"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AuthClaims are the identity claims extracted from a provider-issued access token.
type AuthClaims struct {
	Subject  string
	Email    string
	FullName string
}
