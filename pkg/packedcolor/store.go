// Package packedcolor provides a dense store that keeps one 2-bit color code
// per (participant, test, subject) triple, plus linear-scan aggregations over it.
//
// Index arguments are 0-based and are NOT validated: callers must keep
// userIndex in [0, NumUsers), testIndex in [0, NumTests) and
// subjectIndex in [0, NumSubjects). The store is not concurrency-safe.
package packedcolor

import (
	"math/rand"
	"time"
)

// NumColors is the number of distinct color codes a cell can hold.
const NumColors = 1 << bitsPerColor

// Dimensions describes the fixed shape of a Store.
type Dimensions struct {
	NumUsers    int `json:"num_users"`
	NumTests    int `json:"num_tests"`
	NumSubjects int `json:"num_subjects"`
}

// ColorsPerUser returns the number of cells held for each user.
func (d Dimensions) ColorsPerUser() int {
	return d.NumTests * d.NumSubjects
}

// BitsPerUser returns the number of meaningful bits in a user block.
func (d Dimensions) BitsPerUser() int {
	return d.ColorsPerUser() * bitsPerColor
}

// BytesPerUser returns the size of a user block, rounded up to whole bytes.
func (d Dimensions) BytesPerUser() int {
	return (d.BitsPerUser() + 7) / 8
}

// Store is the packed color array.
type Store struct {
	dims         Dimensions
	bytesPerUser int
	vals         []byte
}

// New allocates a zero filled Store for the given dimensions.
func New(numUsers, numTests, numSubjects int) *Store {
	d := Dimensions{
		NumUsers:    numUsers,
		NumTests:    numTests,
		NumSubjects: numSubjects,
	}
	return &Store{
		dims:         d,
		bytesPerUser: d.BytesPerUser(),
		vals:         make([]byte, d.BytesPerUser()*numUsers),
	}
}

// Dimensions returns the shape of the store.
func (s *Store) Dimensions() Dimensions {
	return s.dims
}

// Len returns the size of the underlying buffer in bytes.
func (s *Store) Len() int {
	return len(s.vals)
}

// Bytes returns a copy of the underlying buffer.
func (s *Store) Bytes() []byte {
	b := make([]byte, len(s.vals))
	copy(b, s.vals)
	return b
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	return &Store{
		dims:         s.dims,
		bytesPerUser: s.bytesPerUser,
		vals:         s.Bytes(),
	}
}

func (s *Store) bitPos(userIndex, testIndex, subjectIndex int) int {
	colorIndex := testIndex*s.dims.NumSubjects + subjectIndex
	return userIndex*s.bytesPerUser*8 + colorIndex*bitsPerColor
}

// SetColor stores the low 2 bits of colorCode for the given cell. Higher bits are discarded.
func (s *Store) SetColor(userIndex, testIndex, subjectIndex int, colorCode uint8) {
	setBits(s.vals, s.bitPos(userIndex, testIndex, subjectIndex), colorCode)
}

// GetColor returns the color code stored for the given cell, in [0,3].
func (s *Store) GetColor(userIndex, testIndex, subjectIndex int) uint8 {
	return getBits(s.vals, s.bitPos(userIndex, testIndex, subjectIndex))
}

// Randomize overwrites every cell with a code drawn uniformly from [0,3].
// If r is nil, a time seeded source is used.
func (s *Store) Randomize(r *rand.Rand) {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.each(func(u, t, sub int) {
		s.SetColor(u, t, sub, uint8(r.Intn(NumColors)))
	})
}

// Fill sets every cell to colorCode.
func (s *Store) Fill(colorCode uint8) {
	s.each(func(u, t, sub int) {
		s.SetColor(u, t, sub, colorCode)
	})
}

func (s *Store) each(fn func(u, t, sub int)) {
	for u := 0; u < s.dims.NumUsers; u++ {
		for t := 0; t < s.dims.NumTests; t++ {
			for sub := 0; sub < s.dims.NumSubjects; sub++ {
				fn(u, t, sub)
			}
		}
	}
}
