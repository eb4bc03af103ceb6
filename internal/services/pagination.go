package services

import "civicreport-backend-go/internal/store"

const defaultLimit = 10

type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) normalized() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

func (p PageRequest) window() store.Page {
	p = p.normalized()
	return store.Page{Limit: p.Limit, Offset: (p.Page - 1) * p.Limit}
}

// Paged is one page of items plus the totals the list endpoints report.
type Paged[T any] struct {
	Items       []T
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

func newPaged[T any](items []T, total int, req PageRequest) Paged[T] {
	req = req.normalized()
	pages := 0
	if total > 0 {
		pages = (total + req.Limit - 1) / req.Limit
	}
	if items == nil {
		items = []T{}
	}
	return Paged[T]{Items: items, TotalCount: total, TotalPages: pages, CurrentPage: req.Page}
}
