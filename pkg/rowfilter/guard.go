package rowfilter

import "context"

// Scoped is implemented by rows that carry a tenant id.
type Scoped interface {
	TenantRef() string
}

// QueryFunc loads rows with the given filter applied. Implementations embed
// the filter's predicate into their query (see Filter.Predicate).
type QueryFunc[T Scoped] func(ctx context.Context, f Filter) ([]T, error)

// Query wraps a single tenant-scoped read. It short-circuits to an empty
// result when the filter is closed, delegates otherwise, and verifies the
// tenant id of every returned row before handing the result back. A
// verification failure returns ErrIsolationViolation and no rows.
func Query[T Scoped](ctx context.Context, f Filter, fn QueryFunc[T]) ([]T, error) {
	if f.Closed() {
		return nil, nil
	}

	rows, err := fn(ctx, f)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if err := f.Verify(row.TenantRef()); err != nil {
			return nil, err
		}
	}

	return rows, nil
}

// QueryOne is Query for single-row lookups. A closed filter yields ok=false.
func QueryOne[T Scoped](ctx context.Context, f Filter, fn func(ctx context.Context, f Filter) (T, bool, error)) (T, bool, error) {
	var zero T
	if f.Closed() {
		return zero, false, nil
	}

	row, ok, err := fn(ctx, f)
	if err != nil || !ok {
		return zero, false, err
	}

	if err := f.Verify(row.TenantRef()); err != nil {
		return zero, false, err
	}

	return row, true, nil
}
