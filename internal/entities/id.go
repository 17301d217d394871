package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrInvalidID is returned when a string is not a well-formed identifier.
var ErrInvalidID = errors.New("invalid identifier")

// ID identifies authors and books. It has the same 12-byte layout as a
// MongoDB ObjectID and is always rendered as 24 lowercase hex characters,
// regardless of which backend stores it.
type ID bson.ObjectID

// NilID is the zero identifier.
var NilID ID

// NewID generates a fresh identifier.
func NewID() ID {
	return ID(bson.NewObjectID())
}

// ParseID validates and decodes a hex identifier.
func ParseID(s string) (ID, error) {
	oid, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return NilID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(oid), nil
}

// MustParseID is like ParseID but panics on malformed input.
// Intended for fixtures and tests.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) Hex() string {
	return bson.ObjectID(id).Hex()
}

func (id ID) String() string {
	return id.Hex()
}

func (id ID) IsZero() bool {
	return id == NilID
}

// ObjectID converts the identifier for use in MongoDB filters and documents.
func (id ID) ObjectID() bson.ObjectID {
	return bson.ObjectID(id)
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = NilID
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value stores the identifier as its hex form. The zero identifier is stored
// as NULL so that a missing reference stays distinguishable.
func (id ID) Value() (driver.Value, error) {
	if id.IsZero() {
		return nil, nil
	}
	return id.Hex(), nil
}

// Scan reads an identifier previously written by Value.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = NilID
		return nil
	case string:
		return id.scanString(v)
	case []byte:
		return id.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into entities.ID", src)
	}
}

func (id *ID) scanString(s string) error {
	if s == "" {
		*id = NilID
		return nil
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
