package config

import (
	"fmt"
)

var (
	// DefaultStoreConfig matches the survey size: 100000 participants, 10 tests, 5 subjects.
	DefaultStoreConfig = Store{
		NumUsers:    100000,
		NumTests:    10,
		NumSubjects: 5,
		Randomize:   true,
	}
	// DefaultQueryConfig is the default value of Query.
	DefaultQueryConfig = Query{
		DefaultTopN: 10,
		MaxTopN:     1000,
	}
)

// Store is the configuration of the packed color store.
type Store struct {
	NumUsers    int `yaml:"num_users"`
	NumTests    int `yaml:"num_tests"`
	NumSubjects int `yaml:"num_subjects"`
	// Randomize fills the store with random codes on start.
	Randomize bool `yaml:"randomize"`
	// Seed is the random seed used by Randomize. 0 means time seeded.
	Seed int64 `yaml:"seed"`
}

func (s Store) Validate() error {
	if s.NumUsers <= 0 {
		return fmt.Errorf("invalid num_users: %d", s.NumUsers)
	}
	if s.NumTests <= 0 {
		return fmt.Errorf("invalid num_tests: %d", s.NumTests)
	}
	if s.NumSubjects <= 0 {
		return fmt.Errorf("invalid num_subjects: %d", s.NumSubjects)
	}
	return nil
}

// Query is the configuration of the top-N queries.
type Query struct {
	// DefaultTopN is used when a query does not specify n.
	DefaultTopN int `yaml:"default_top_n"`
	// MaxTopN is the largest n a query may ask for.
	MaxTopN int `yaml:"max_top_n"`
}

func (q Query) Validate() error {
	if q.MaxTopN <= 0 {
		return fmt.Errorf("invalid max_top_n: %d", q.MaxTopN)
	}
	if q.DefaultTopN <= 0 || q.DefaultTopN > q.MaxTopN {
		return fmt.Errorf("invalid default_top_n: %d", q.DefaultTopN)
	}
	return nil
}
