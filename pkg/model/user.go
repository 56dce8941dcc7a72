// Package model holds the records validated alongside configuration
// documents.
package model

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/morph/pkg/schema"
	"github.com/aretw0/morph/pkg/value"
)

// ErrNegativeAge is returned when a user is constructed with an age below zero.
var ErrNegativeAge = errors.New("age must be positive")

// UserSchema describes the document shape accepted by DecodeUser.
var UserSchema = schema.Schema{
	"username": schema.Text(),
	"age":      schema.Integer(),
}

// User is a validated user record.
type User struct {
	Username string `json:"username" yaml:"username" mapstructure:"username"`
	Age      int    `json:"age" yaml:"age" mapstructure:"age"`
}

// NewUser creates a User, rejecting negative ages.
func NewUser(username string, age int) (*User, error) {
	u := &User{Username: username, Age: age}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the field constraints of u.
func (u *User) Validate() error {
	if u.Age < 0 {
		return &schema.ValidationError{
			Key:    "age",
			Reason: ErrNegativeAge.Error(),
			Kind:   value.KindInteger.String(),
			Err:    ErrNegativeAge,
		}
	}
	return nil
}

// DecodeUser checks doc against UserSchema and decodes it into a User.
func DecodeUser(doc value.Map) (*User, error) {
	if err := schema.Validate(UserSchema, doc); err != nil {
		return nil, err
	}

	var u User
	if err := mapstructure.Decode(doc.Native(), &u); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUsers builds one user per name, aged startingAge plus the name's index.
func CreateUsers(names []string, startingAge int) ([]User, error) {
	users := make([]User, 0, len(names))
	for idx, name := range names {
		u, err := NewUser(name, startingAge+idx)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", name, err)
		}
		users = append(users, *u)
	}
	return users, nil
}
