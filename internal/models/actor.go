package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the available roles for the role gate.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleLeader UserRole = "LEADER"
	RoleMember UserRole = "MEMBER"
)

// Actor identifies who performs a mutating operation.
type Actor struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Name   string   `json:"name"`
}

// SystemActor is used by background jobs and the CLI.
var SystemActor = Actor{UserID: "system", Role: RoleAdmin, Name: "System"}

// CanManage reports whether the actor may change programme data.
func (a Actor) CanManage() bool {
	return a.Role == RoleAdmin || a.Role == RoleLeader
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into the caller context passed to services.
func (c *JWTClaims) Actor() Actor {
	if c == nil {
		return Actor{}
	}
	return Actor{UserID: c.UserID, Role: c.Role, Name: c.Name}
}
