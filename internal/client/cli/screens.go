package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moviedeck/internal/client/listdiff"
	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/client/state"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
)

var (
	errSuperseded = errors.New("request superseded")
	errBadRef     = errors.New("unknown row reference")
	errEmptyToken = errors.New("token is required")
)

// listScreen is a catalog-shaped screen: its request state, the rows it
// rendered last and how to fetch them again.
type listScreen struct {
	name    string
	state   *state.Container[[]models.CatalogEntry]
	adapter *listdiff.Adapter
	load    func(ctx context.Context) ([]models.CatalogEntry, error)
}

type screens struct {
	catalog   *listScreen
	favorites *listScreen
	search    *listScreen

	detail   *state.Container[*models.CatalogEntry]
	auth     *state.Container[*models.Identity]
	account  *state.Container[struct{}]
	profile  *state.Container[*models.Profile]
	favorite *state.Container[bool]
	add      *state.Container[*models.CatalogEntry]
	poster   *state.Container[string]
	settings *state.Container[models.Settings]

	// active is the list screen "#N" references resolve against.
	active *listScreen
	query  string

	// written by the adapter callbacks
	clicked *models.CatalogEntry
	toggled *models.CatalogEntry
}

func newScreens(a *App) *screens {
	s := &screens{
		detail:   newContainer[*models.CatalogEntry](a.log, "detail"),
		auth:     newContainer[*models.Identity](a.log, "auth"),
		account:  newContainer[struct{}](a.log, "account"),
		profile:  newContainer[*models.Profile](a.log, "profile"),
		favorite: newContainer[bool](a.log, "favorite"),
		add:      newContainer[*models.CatalogEntry](a.log, "add"),
		poster:   newContainer[string](a.log, "poster"),
		settings: newContainer[models.Settings](a.log, "settings"),
	}

	s.catalog = s.newList(a.log, "catalog", a.catalog.ListAll)
	s.favorites = s.newList(a.log, "favorites", func(ctx context.Context) ([]models.CatalogEntry, error) {
		return a.catalog.ListFavorites(ctx, a.session.UserID())
	})
	s.search = s.newList(a.log, "search", func(ctx context.Context) ([]models.CatalogEntry, error) {
		return a.catalog.Search(ctx, s.query)
	})
	return s
}

func (s *screens) newList(log logging.Logger, name string, load func(ctx context.Context) ([]models.CatalogEntry, error)) *listScreen {
	return &listScreen{
		name:  name,
		state: newContainer[[]models.CatalogEntry](log, name),
		adapter: listdiff.NewAdapter(
			func(e models.CatalogEntry) { s.clicked = &e },
			func(e models.CatalogEntry) { s.toggled = &e },
		),
		load: load,
	}
}

func newContainer[T any](log logging.Logger, key string) *state.Container[T] {
	c := state.New[T](key, state.WithMessages(messageFor))
	c.Subscribe(func(st state.RequestState[T]) {
		log.Debug(context.Background(), "screen state", "screen", key, "status", st.Status.String())
	})
	return c
}

// reset drops everything that belongs to the signed-in user.
func (s *screens) reset() {
	for _, l := range []*listScreen{s.catalog, s.favorites, s.search} {
		l.state.Reset()
		l.adapter.Submit(nil)
	}
	s.profile.Reset()
	s.favorite.Reset()
	s.active = nil
}

// run drives c through one request cycle and consumes the terminal state.
// A failure is printed with its user-facing message and returned.
func run[T any](ctx context.Context, a *App, c *state.Container[T], op func(context.Context) (T, error)) (T, error) {
	c.Run(ctx, op)
	st := c.Consume()

	var zero T
	switch st.Status {
	case state.Success:
		return st.Value, nil
	case state.Error:
		a.printf("Error: %s\n", st.Message)
		return zero, st.Err
	}
	return zero, errSuperseded
}

// show loads l, makes it the active screen and prints what changed since
// it was last rendered.
func (a *App) show(ctx context.Context, l *listScreen) error {
	entries, err := run(ctx, a, l.state, l.load)
	if err != nil {
		return err
	}
	a.screens.active = l
	a.render(l, l.adapter.Submit(entries))
	return nil
}

func (a *App) render(l *listScreen, changes []listdiff.Change) {
	for _, c := range changes {
		switch c.Op {
		case listdiff.Remove:
			a.printf("- %s\n", c.Entry.Title)
		case listdiff.Insert:
			a.printf("+ %s\n", formatRow(c.To, c.Entry))
		case listdiff.Update:
			a.printf("~ %s\n", formatRow(c.To, c.Entry))
		case listdiff.Move:
			a.printf("> %s\n", formatRow(c.To, c.Entry))
		}
	}

	switch {
	case l.adapter.Len() == 0:
		a.printf("Nothing to show.\n")
	case len(changes) == 0:
		a.printf("No changes.\n")
	}
}

func formatRow(pos int, e models.CatalogEntry) string {
	star := " "
	if e.IsFavorite {
		star = "*"
	}
	return fmt.Sprintf("#%d [%s] %s (%d) %.1f", pos+1, star, e.Title, e.ReleaseYear, e.Rating)
}

// resolveRef turns "#N" into a row of the active screen by going through
// the adapter callback; anything else is taken as an entry id.
func (a *App) resolveRef(ref string, toggle bool) (models.CatalogEntry, error) {
	n, isPos := strings.CutPrefix(ref, "#")
	if !isPos {
		return models.CatalogEntry{ID: ref}, nil
	}

	pos, err := strconv.Atoi(n)
	l := a.screens.active
	if err != nil || l == nil {
		return models.CatalogEntry{}, errBadRef
	}

	a.screens.clicked, a.screens.toggled = nil, nil
	if toggle {
		if !l.adapter.ToggleFavorite(pos - 1) {
			return models.CatalogEntry{}, errBadRef
		}
		return *a.screens.toggled, nil
	}
	if !l.adapter.Click(pos - 1) {
		return models.CatalogEntry{}, errBadRef
	}
	return *a.screens.clicked, nil
}
