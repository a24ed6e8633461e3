package category

import "planner/internal/task"

// Resolver looks up category metadata by id. The zero value has no
// categories loaded and reports every id as not found.
type Resolver struct {
	byID  map[string]task.Category
	order []task.Category
}

func NewResolver(cats []task.Category) *Resolver {
	r := &Resolver{}
	r.Load(cats)
	return r
}

// Load replaces the known categories. A later duplicate id wins.
func (r *Resolver) Load(cats []task.Category) {
	r.byID = make(map[string]task.Category, len(cats))
	r.order = r.order[:0]
	for _, c := range cats {
		if _, dup := r.byID[c.ID]; !dup {
			r.order = append(r.order, c)
		} else {
			for i := range r.order {
				if r.order[i].ID == c.ID {
					r.order[i] = c
				}
			}
		}
		r.byID[c.ID] = c
	}
}

func (r *Resolver) Resolve(id string) (task.Category, bool) {
	if r == nil || r.byID == nil {
		return task.Category{}, false
	}
	c, ok := r.byID[id]
	return c, ok
}

// All returns the categories in load order.
func (r *Resolver) All() []task.Category {
	if r == nil {
		return nil
	}
	out := make([]task.Category, len(r.order))
	copy(out, r.order)
	return out
}

// Name returns the display name for id, falling back to the id itself for
// stale references.
func (r *Resolver) Name(id string) string {
	if c, ok := r.Resolve(id); ok && c.Name != "" {
		return c.Name
	}
	return id
}
