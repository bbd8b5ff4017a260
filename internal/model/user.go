package model

import "time"

// User represents a credential record as stored in the `users` table.
// The JSON tags are omitted because these structs are only used by the
// repository layer; handlers never return a credential to a client.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique username.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username
    PasswordHash string    // users.password_hash
    CreatedAt    time.Time // users.created_at
}
