// Package listdiff renders catalog lists incrementally: each submission is
// diffed against the previously rendered sequence so only changed rows are
// redrawn.
package listdiff

import "github.com/dmitrijs2005/moviedeck/internal/client/models"

type Op uint8

const (
	Insert Op = iota + 1
	Remove
	Update
	Move
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Remove:
		return "remove"
	case Update:
		return "update"
	case Move:
		return "move"
	}
	return "unknown"
}

// Change describes one row operation. From is the position in the previous
// sequence (-1 for Insert), To the position in the new one (-1 for Remove).
type Change struct {
	Op    Op
	From  int
	To    int
	Entry models.CatalogEntry
}

// Adapter keeps the last rendered sequence and the row callbacks.
type Adapter struct {
	rendered   []models.CatalogEntry
	onClick    func(models.CatalogEntry)
	onFavorite func(models.CatalogEntry)
}

// NewAdapter binds the callbacks for row selection and the favorite toggle.
// Either may be nil.
func NewAdapter(onClick, onFavorite func(models.CatalogEntry)) *Adapter {
	return &Adapter{onClick: onClick, onFavorite: onFavorite}
}

// Items returns the last rendered sequence.
func (a *Adapter) Items() []models.CatalogEntry {
	return append([]models.CatalogEntry(nil), a.rendered...)
}

func (a *Adapter) Len() int { return len(a.rendered) }

// Submit replaces the rendered sequence with next and returns what changed.
// Rows are matched by id; a matched row whose fields differ is an Update.
// Rows that changed relative order are reported as Moves. Submitting the
// same sequence twice yields no changes.
func (a *Adapter) Submit(next []models.CatalogEntry) []Change {
	prev := a.rendered
	a.rendered = append([]models.CatalogEntry(nil), next...)
	return Diff(prev, next)
}

// Click invokes the row callback for the entry at pos.
func (a *Adapter) Click(pos int) bool {
	return a.invoke(pos, a.onClick)
}

// ToggleFavorite invokes the favorite callback for the entry at pos.
func (a *Adapter) ToggleFavorite(pos int) bool {
	return a.invoke(pos, a.onFavorite)
}

func (a *Adapter) invoke(pos int, fn func(models.CatalogEntry)) bool {
	if fn == nil || pos < 0 || pos >= len(a.rendered) {
		return false
	}
	fn(a.rendered[pos])
	return true
}

// Diff computes the changes turning prev into next.
func Diff(prev, next []models.CatalogEntry) []Change {
	oldPos := make(map[string]int, len(prev))
	for i, e := range prev {
		oldPos[e.ID] = i
	}
	newPos := make(map[string]int, len(next))
	for i, e := range next {
		newPos[e.ID] = i
	}

	var changes []Change
	for i := len(prev) - 1; i >= 0; i-- {
		if _, ok := newPos[prev[i].ID]; !ok {
			changes = append(changes, Change{Op: Remove, From: i, To: -1, Entry: prev[i]})
		}
	}

	stay := stable(prev, next, newPos)
	for j, e := range next {
		i, ok := oldPos[e.ID]
		switch {
		case !ok:
			changes = append(changes, Change{Op: Insert, From: -1, To: j, Entry: e})
			continue
		case !stay[e.ID]:
			changes = append(changes, Change{Op: Move, From: i, To: j, Entry: e})
		}
		if prev[i] != e {
			changes = append(changes, Change{Op: Update, From: i, To: j, Entry: e})
		}
	}
	return changes
}

// stable returns the ids that keep their relative order: the longest common
// subsequence of the ids present in both lists.
func stable(prev, next []models.CatalogEntry, newPos map[string]int) map[string]bool {
	var a []string
	for _, e := range prev {
		if _, ok := newPos[e.ID]; ok {
			a = append(a, e.ID)
		}
	}
	inPrev := make(map[string]bool, len(a))
	for _, id := range a {
		inPrev[id] = true
	}
	var b []string
	for _, e := range next {
		if inPrev[e.ID] {
			b = append(b, e.ID)
		}
	}

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	out := make(map[string]bool, lcs[0][0])
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] == b[j]:
			out[a[i]] = true
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			i++
		default:
			j++
		}
	}
	return out
}
