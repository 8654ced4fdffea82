package gitlab

import "context"

// PageInfo is the cursor block carried by every paginated GraphQL connection.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// FetchAll drains a cursor-paginated query. fetch is invoked with an empty
// cursor for the first page and then, while the extracted PageInfo reports
// hasNextPage, again with each page's endCursor. Every subsequent page is
// folded into the accumulator via merge, so the result is equivalent to what
// a single unpaginated query would have returned.
//
// Pages are fetched strictly sequentially: each cursor depends on the
// previous response. A failed page fetch aborts the whole walk and no
// partial accumulation is returned; the walk is a pure function of its
// inputs, so callers retry by calling FetchAll again. pageInfo returning an
// error (e.g. the response is missing its pageInfo block) aborts the same
// way rather than silently producing a truncated result.
func FetchAll[T any](
	ctx context.Context,
	fetch func(ctx context.Context, after string) (T, error),
	pageInfo func(T) (PageInfo, error),
	merge func(acc, next T) T,
) (T, error) {
	var zero T

	acc, err := fetch(ctx, "")
	if err != nil {
		return zero, err
	}
	info, err := pageInfo(acc)
	if err != nil {
		return zero, err
	}

	for info.HasNextPage {
		next, err := fetch(ctx, info.EndCursor)
		if err != nil {
			return zero, err
		}
		acc = merge(acc, next)
		info, err = pageInfo(next)
		if err != nil {
			return zero, err
		}
	}
	return acc, nil
}
