package shared

import "strconv"

type Page struct {
	Limit  int
	Offset int
}

// ParsePageQuery reads limit and offset query parameters. The repository
// layer clamps the limit, so out-of-range values are not an error here.
func ParsePageQuery(ctx Context) Page {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	offset, _ := strconv.Atoi(ctx.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}
