package dynamo

import (
	"context"
	"errors"
)

// Done is returned by Iterator.Next when no more items remain.
var Done = errors.New("no more items")

// fetchFunc loads one page starting after startKey and returns the page's
// items plus the continuation cursor, empty when the result set is exhausted.
type fetchFunc func(ctx context.Context, startKey Item) (items []Item, lastKey Item, err error)

// Iterator walks a paginated query or scan one item at a time, requesting
// the next page only once the current one is consumed. Cursor state is local
// to the iterator; re-iterating requires a fresh Query or Scan call.
type Iterator struct {
	ctx      context.Context
	fetch    fetchFunc
	buf      []Item
	pos      int
	startKey Item
	finished bool
	err      error
}

func newIterator(ctx context.Context, fetch fetchFunc) *Iterator {
	return &Iterator{ctx: ctx, fetch: fetch}
}

// Next returns the next item, or Done once the sequence is exhausted. A
// fetch error is sticky: every subsequent call returns it again.
func (it *Iterator) Next() (Item, error) {
	if it.err != nil {
		return nil, it.err
	}
	for it.pos >= len(it.buf) {
		if it.finished {
			return nil, Done
		}
		items, lastKey, err := it.fetch(it.ctx, it.startKey)
		if err != nil {
			it.err = err
			return nil, err
		}
		it.buf, it.pos = items, 0
		it.startKey = lastKey
		if len(lastKey) == 0 {
			it.finished = true
		}
	}
	item := it.buf[it.pos]
	it.pos++
	return item, nil
}

// Collect drains the iterator into a slice.
func (it *Iterator) Collect() ([]Item, error) {
	var out []Item
	for {
		item, err := it.Next()
		if errors.Is(err, Done) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
}
