package validators

import (
	"github.com/google/uuid"
)

// ValidateUUID normalizes an identifier to uuid.UUID.
// It accepts a uuid.UUID, a *uuid.UUID, the 36-character textual form, or the 16-byte binary form as []byte or
// string. Malformed text or bytes yield ErrInvalidArgument, any other type ErrTypeMismatch.
// Any 16 byte value is read as the binary form, so a 16 character string such as "abcdefghijklmnop" is accepted
// as an identifier rather than rejected as malformed text.
func ValidateUUID(value interface{}) (uuid.UUID, error) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, nil
	case *uuid.UUID:
		if v == nil {
			return uuid.Nil, TypeMismatch("uuid is nil")
		}
		return *v, nil
	case []byte:
		return parseUUID(string(v))
	case string:
		return parseUUID(v)
	default:
		return uuid.Nil, TypeMismatch("%T is not a valid uuid", value)
	}
}

func parseUUID(s string) (uuid.UUID, error) {
	// raw binary, as stored in the database
	if len(s) == 16 {
		id, err := uuid.FromBytes([]byte(s))
		if err != nil {
			return uuid.Nil, InvalidArgument("invalid uuid: %v", err)
		}
		return id, nil
	}

	if len(s) != 36 {
		return uuid.Nil, InvalidArgument("invalid uuid %q", s)
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, InvalidArgument("invalid uuid %q", s)
	}
	return id, nil
}
