// Package idx classifies and generates entry identifiers.
//
// Two identifier shapes coexist:
//
//   - object-store record ids: 20 to 24 letters or digits
//     (NewObjectID produces 24 lowercase hex characters);
//   - locally generated ids: a base-36 millisecond timestamp followed by a
//     random base-36 suffix (NewLocalID).
//
// Classify only looks at the shape of the string. A local id is kept shorter
// than 20 characters so it can never be mistaken for a record id.
package idx

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"regexp"
	"strconv"
	"time"
)

// Kind is the outcome of identifier classification.
type Kind int

const (
	// NeedsGeneration means the id is absent or not a record id; a new id
	// must be assigned on save.
	NeedsGeneration Kind = iota
	// RemoteRecord means the id has the shape of an existing object-store record.
	RemoteRecord
)

func (k Kind) String() string {
	switch k {
	case RemoteRecord:
		return "remote_record"
	default:
		return "needs_generation"
	}
}

// LocalSuffixLen is the length of the random part of a local id.
const LocalSuffixLen = 8

// objectIDBytes random bytes give a 24 character hex id.
const objectIDBytes = 12

var recordPattern = regexp.MustCompile(`^[a-zA-Z0-9]{20,24}$`)

// Classify reports whether id denotes an existing object-store record.
func Classify(id string) Kind {
	if recordPattern.MatchString(id) {
		return RemoteRecord
	}
	return NeedsGeneration
}

// NewLocalID returns a timestamp-based id with a random suffix.
// Uniqueness is probabilistic.
func NewLocalID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36) + randomBase36(LocalSuffixLen)
}

// NewObjectID returns a fresh record id for the object store.
// It panics if the system random source fails.
func NewObjectID() string {
	b := make([]byte, objectIDBytes)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

var base36Max = big.NewInt(36)

func randomBase36(n int) string {
	out := make([]byte, n)
	for i := range out {
		v, err := rand.Int(rand.Reader, base36Max)
		if err != nil {
			panic(err)
		}
		out[i] = strconv.FormatInt(v.Int64(), 36)[0]
	}
	return string(out)
}
