// internal/domain/promotion/code.go
package promotion

import "github.com/oklog/ulid/v2"

// NewCode generates a unique human-readable promotion code. ULIDs are
// already uppercase Crockford base32; the tail carries the randomness,
// so the code keeps the last 10 characters.
func NewCode() string {
	id := ulid.Make().String()
	return "PR" + id[len(id)-10:]
}
