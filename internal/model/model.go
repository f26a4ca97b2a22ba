package model

import "time"

// Entry is one parsed line of an input file.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Max       int32     `json:"max"`
	Values    []int32   `json:"values"`
}

type Group struct {
	Max   int32   `json:"max"`
	Count int     `json:"count"`
	Sum   int64   `json:"sum"`
	Mean  float64 `json:"mean"`
}

type Report struct {
	Path   string  `json:"path"`
	Lines  int     `json:"lines"`
	Groups []Group `json:"groups"`
}

func (r *Report) GroupCount() int {
	if r == nil {
		return 0
	}
	return len(r.Groups)
}

func (r *Report) ValueCount() int {
	if r == nil {
		return 0
	}

	total := 0
	for _, group := range r.Groups {
		total += group.Count
	}
	return total
}
