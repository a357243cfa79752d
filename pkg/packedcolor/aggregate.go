package packedcolor

import (
	"sort"
)

// UserScore is a 0-based user index with its weighted score.
type UserScore struct {
	User  int `json:"user"`
	Score int `json:"score"`
}

// ComputeAverages returns the mean color code of every (test, subject) cell over all users.
// The result is indexed [test][subject] and every value lies in [0,3].
func (s *Store) ComputeAverages() [][]float64 {
	sums := make([][]uint64, s.dims.NumTests)
	for t := range sums {
		sums[t] = make([]uint64, s.dims.NumSubjects)
	}
	s.each(func(u, t, sub int) {
		sums[t][sub] += uint64(s.GetColor(u, t, sub))
	})
	avg := make([][]float64, s.dims.NumTests)
	for t := range sums {
		avg[t] = make([]float64, s.dims.NumSubjects)
		if s.dims.NumUsers == 0 {
			continue
		}
		for sub, sum := range sums[t] {
			avg[t][sub] = float64(sum) / float64(s.dims.NumUsers)
		}
	}
	return avg
}

// TopNByColor returns at most n users, in ascending index order, whose cell
// (testIndex, subjectIndex) holds colorCode. It stops scanning once n users are found.
// This is a filter in scan order, not a ranking.
func (s *Store) TopNByColor(testIndex, subjectIndex int, colorCode uint8, n int) []int {
	users := make([]int, 0)
	colorCode &= colorMask
	for u := 0; u < s.dims.NumUsers && len(users) < n; u++ {
		if s.GetColor(u, testIndex, subjectIndex) == colorCode {
			users = append(users, u)
		}
	}
	return users
}

// TopNWeightedInTest ranks users by the subject weighted score of a single test.
// The weight of a subject is its 1-based position.
func (s *Store) TopNWeightedInTest(testIndex, n int) []UserScore {
	return s.topN(n, func(u int) int {
		return s.testScore(u, testIndex)
	})
}

// TopNWeightedOverall ranks users by the subject weighted score summed over every test.
// Tests carry no weight of their own.
func (s *Store) TopNWeightedOverall(n int) []UserScore {
	return s.topN(n, func(u int) int {
		var score int
		for t := 0; t < s.dims.NumTests; t++ {
			score += s.testScore(u, t)
		}
		return score
	})
}

func (s *Store) testScore(u, testIndex int) int {
	var score int
	for sub := 0; sub < s.dims.NumSubjects; sub++ {
		score += int(s.GetColor(u, testIndex, sub)) * (sub + 1)
	}
	return score
}

// topN sorts all users by score descending, ties by ascending user index, and keeps the first n.
func (s *Store) topN(n int, score func(u int) int) []UserScore {
	if n <= 0 {
		return []UserScore{}
	}
	scores := make([]UserScore, s.dims.NumUsers)
	for u := range scores {
		scores[u] = UserScore{User: u, Score: score(u)}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].User < scores[j].User
	})
	if n > len(scores) {
		n = len(scores)
	}
	return scores[:n]
}

// ColorCounts returns how many cells hold each color code.
func (s *Store) ColorCounts() [NumColors]uint64 {
	var counts [NumColors]uint64
	s.each(func(u, t, sub int) {
		counts[s.GetColor(u, t, sub)]++
	})
	return counts
}
