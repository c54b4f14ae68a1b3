package segment

import (
	"math/rand/v2"
	"slices"
)

// Take returns the first n records.
func Take(records []Record, n int) []Record {
	n = max(0, min(n, len(records)))
	return slices.Clone(records[:n:n])
}

// Skip returns the records after the first n.
func Skip(records []Record, n int) []Record {
	n = max(0, min(n, len(records)))
	out := make([]Record, 0, len(records)-n)
	return append(out, records[n:]...)
}

// Page is one page of a paginated collection.
type Page struct {
	Items      []Record `json:"items"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
	TotalItems int      `json:"totalItems"`
}

// Paginate returns the 1-indexed page of records. Pages outside the range
// yield no items.
func Paginate(records []Record, page, pageSize int) Page {
	p := Page{
		Items:      []Record{},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(records),
	}
	if pageSize <= 0 {
		return p
	}
	p.TotalPages = (len(records) + pageSize - 1) / pageSize
	if page < 1 || page > p.TotalPages {
		return p
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(records))
	p.Items = slices.Clone(records[start:end])
	return p
}

// Sample draws n records at random using the package-level generator.
func Sample(records []Record, n int, withReplacement bool) []Record {
	return SampleWith(nil, records, n, withReplacement)
}

// SampleWith draws n records using rng (nil selects the package-level
// generator). With replacement, records may repeat. Without replacement a
// shuffled copy is truncated to n, so n larger than the input returns every
// record once.
func SampleWith(rng *rand.Rand, records []Record, n int, withReplacement bool) []Record {
	intN, shuffle := rand.IntN, rand.Shuffle
	if rng != nil {
		intN, shuffle = rng.IntN, rng.Shuffle
	}
	if n <= 0 || len(records) == 0 {
		return []Record{}
	}

	if withReplacement {
		out := make([]Record, n)
		for i := range out {
			out[i] = records[intN(len(records))]
		}
		return out
	}

	out := slices.Clone(records)
	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out[:min(n, len(out))]
}
