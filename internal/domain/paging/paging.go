package paging

// DefaultSize is the page size applied when the client does not send one.
const DefaultSize = 10

// Page is one slice of a paged query result.
type Page[E any] struct {
	Content       []E
	TotalElements int64
	TotalPages    int
	Number        int
	Size          int
}
