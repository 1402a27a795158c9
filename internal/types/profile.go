package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Fruit is the native fruit of an island. It travels as an integer on the wire.
type Fruit int

const (
	Apple Fruit = iota
	Cherry
	Orange
	Peach
	Pear
)

var fruitNames = map[Fruit]string{
	Apple:  "apple",
	Cherry: "cherry",
	Orange: "orange",
	Peach:  "peach",
	Pear:   "pear",
}

func (f Fruit) String() string {
	if n, ok := fruitNames[f]; ok {
		return n
	}
	return fmt.Sprintf("fruit(%d)", int(f))
}

// ParseFruit accepts a fruit name, case-insensitive.
func ParseFruit(s string) (Fruit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, n := range fruitNames {
		if n == s {
			return f, nil
		}
	}
	return Apple, &ValidationError{Fields: []string{"fruitKind"}, Msg: fmt.Sprintf("unknown fruit %q", s)}
}

// Profile is edited locally and pushed to the remote service.
type Profile struct {
	Name       string `json:"name" validate:"required"`
	IslandName string `json:"islandName" validate:"required"`
	Fruit      Fruit  `json:"fruitKind" validate:"min=0,max=4"`
	Status     string `json:"status"`
	TimeZone   string `json:"timeZone" validate:"required"`
}

// DefaultProfile is what a device shows before anything was saved.
func DefaultProfile() Profile {
	return Profile{Fruit: Apple, Status: "😍"}
}

// User is the remote profile payload for CreateProfile and UpdateProfile.
type User struct {
	PublicKey  string `json:"publicKey" validate:"required"`
	Name       string `json:"name"`
	IslandName string `json:"islandName"`
	Fruit      Fruit  `json:"fruitKind"`
	Status     string `json:"status"`
	TimeZone   string `json:"timeZone"`
}

// NewUser binds a profile to the identity's public key.
func NewUser(p Profile, publicKey string) User {
	return User{
		PublicKey:  publicKey,
		Name:       p.Name,
		IslandName: p.IslandName,
		Fruit:      p.Fruit,
		Status:     p.Status,
		TimeZone:   p.TimeZone,
	}
}

var validate = validator.New()

func (p Profile) Validate() error {
	return validationError(validate.Struct(p))
}

func (u User) Validate() error {
	return validationError(validate.Struct(u))
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &ValidationError{Msg: err.Error()}
	}
	out := &ValidationError{}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		out.Fields = append(out.Fields, fieldName(fe))
		msgs = append(msgs, fieldError(fe))
	}
	out.Msg = strings.Join(msgs, "; ")
	return out
}

// fieldName lower-cases the first letter so names match the JSON payload.
func fieldName(fe validator.FieldError) string {
	f := fe.Field()
	if f == "" {
		return f
	}
	return strings.ToLower(f[:1]) + f[1:]
}

func fieldError(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "max":
		return fmt.Sprintf("%s is out of range", field)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
