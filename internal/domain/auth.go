package domain

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of a session token. ID is the hex ObjectID of the
// user in the collection named by Role.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}
