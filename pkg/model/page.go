package model

// SortOrder defines the direction of sorting.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid reports whether the order is asc, desc, or empty (asc).
func (o SortOrder) IsValid() bool {
	return o == "" || o == SortAsc || o == SortDesc
}

// Sort is the caller-facing sort argument of a page request.
type Sort struct {
	By    string    `json:"by" schema:"by"`
	Order SortOrder `json:"order,omitempty" schema:"order"`
}

// Direction returns the effective order, defaulting to ascending.
func (s Sort) Direction() SortOrder {
	if s.Order == SortDesc {
		return SortDesc
	}
	return SortAsc
}

// OrderBy is one store-level sort key.
type OrderBy struct {
	Field     string    `json:"field"`
	Direction SortOrder `json:"direction"`
}

// PageRequest holds the relay-style arguments of one pagination call.
// First and Last are pointers so that an explicit zero is distinguishable
// from an absent argument.
type PageRequest struct {
	First   *int                   `json:"first,omitempty"`
	Last    *int                   `json:"last,omitempty"`
	After   string                 `json:"after,omitempty"`
	Before  string                 `json:"before,omitempty"`
	Search  string                 `json:"search,omitempty"`
	Sort    *Sort                  `json:"sort,omitempty"`
	Filters map[string]interface{} `json:"filters,omitempty"`
}

// Connection is the page of results returned to the caller.
type Connection struct {
	TotalCount int64    `json:"totalCount"`
	Edges      []Edge   `json:"edges"`
	PageInfo   PageInfo `json:"pageInfo"`
}

// Edge pairs a document with the cursor that points at it.
type Edge struct {
	Node   Document `json:"node"`
	Cursor string   `json:"cursor"`
}

// PageInfo describes the position of a page within the full result set.
type PageInfo struct {
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
}

// IntPtr is a helper for building page requests.
func IntPtr(v int) *int { return &v }
