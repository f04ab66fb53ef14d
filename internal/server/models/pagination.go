package models

// DefaultPageLimit is the page size used when none (or a non-positive one) is requested.
const DefaultPageLimit = 9

// Pagination is an offset window over a listing ordered by creation time.
type Pagination struct {
	StartIndex int
	Limit      int
	Ascending  bool
}

// Normalize clamps negative offsets to 0 and non-positive limits to the default.
func (p Pagination) Normalize() Pagination {
	if p.StartIndex < 0 {
		p.StartIndex = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	return p
}

// Direction is the SQL sort keyword.
func (p Pagination) Direction() string {
	if p.Ascending {
		return "ASC"
	}
	return "DESC"
}
