package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/moviedeck/internal/client/client"
	"github.com/dmitrijs2005/moviedeck/internal/client/config"
	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/moviedeck/internal/client/services"
	"github.com/dmitrijs2005/moviedeck/internal/client/session"
	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	session  *session.Holder
	identity models.Identity
	err      error
	pingErr  atomic.Pointer[error]

	calls    []string
	signOuts int
	closed   bool
}

func (f *fakeAuth) signedIn(call string) (*models.Identity, error) {
	f.calls = append(f.calls, call)
	if f.err != nil {
		return nil, f.err
	}
	f.session.Set(f.identity)
	return f.session.Current(), nil
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	return f.signedIn("signin:" + email + ":" + password)
}

func (f *fakeAuth) SignUp(ctx context.Context, email, password, displayName string) (*models.Identity, error) {
	f.identity = models.Identity{ID: "u1", Email: email, DisplayName: displayName}
	return f.signedIn("signup:" + email + ":" + displayName)
}

func (f *fakeAuth) SignInWithFederatedToken(ctx context.Context, token string) (*models.Identity, error) {
	return f.signedIn("federated:" + token)
}

func (f *fakeAuth) RequestPasswordReset(ctx context.Context, email string) error {
	f.calls = append(f.calls, "reset:"+email)
	return f.err
}

func (f *fakeAuth) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	f.calls = append(f.calls, "confirm:"+token+":"+newPassword)
	return f.err
}

func (f *fakeAuth) SignOut(ctx context.Context) {
	f.signOuts++
	f.session.SignOut()
}

func (f *fakeAuth) Profile(ctx context.Context) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := f.session.Current()
	return &models.Profile{Identity: *id, FavoritesCount: len(id.FavoriteIDs)}, nil
}

func (f *fakeAuth) Rename(ctx context.Context, displayName string) (*models.Identity, error) {
	f.identity.DisplayName = displayName
	return f.signedIn("rename:" + displayName)
}

func (f *fakeAuth) Ping(ctx context.Context) error {
	if p := f.pingErr.Load(); p != nil {
		return *p
	}
	return nil
}

func (f *fakeAuth) Close() error {
	f.closed = true
	return nil
}

func (f *fakeAuth) setPingErr(err error) { f.pingErr.Store(&err) }

type fakeCatalog struct {
	movies []models.CatalogEntry
	favs   map[string]bool

	added      []models.NewCatalogEntry
	lastSearch string
	lastUser   string
	listCalls  int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		movies: []models.CatalogEntry{
			{ID: "the_matrix", Title: "The Matrix", Description: "A hacker learns the truth.", ReleaseYear: 1999, Rating: 8.7},
			{ID: "inception", Title: "Inception", Description: "Dreams within dreams.", ReleaseYear: 2010, Rating: 8.8},
			{ID: "heat", Title: "Heat", Description: "Cops and robbers.", ReleaseYear: 1995, Rating: 8.3},
		},
		favs: map[string]bool{},
	}
}

func (f *fakeCatalog) view(e models.CatalogEntry) models.CatalogEntry {
	e.IsFavorite = f.favs[e.ID]
	return e
}

func (f *fakeCatalog) ListAll(ctx context.Context) ([]models.CatalogEntry, error) {
	f.listCalls++
	out := make([]models.CatalogEntry, 0, len(f.movies))
	for _, m := range f.movies {
		out = append(out, f.view(m))
	}
	return out, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, id string) (*models.CatalogEntry, error) {
	for _, m := range f.movies {
		if m.ID == id {
			e := f.view(m)
			return &e, nil
		}
	}
	return nil, common.E(common.KindNotFound, "GetMovie", nil)
}

func (f *fakeCatalog) ListFavorites(ctx context.Context, userID string) ([]models.CatalogEntry, error) {
	f.lastUser = userID
	out := []models.CatalogEntry{}
	for _, m := range f.movies {
		if f.favs[m.ID] {
			out = append(out, f.view(m))
		}
	}
	return out, nil
}

func (f *fakeCatalog) SetFavorite(ctx context.Context, userID, entryID string, isFavorite bool) (bool, error) {
	f.lastUser = userID
	if isFavorite {
		f.favs[entryID] = true
	} else {
		delete(f.favs, entryID)
	}
	return isFavorite, nil
}

func (f *fakeCatalog) Search(ctx context.Context, text string) ([]models.CatalogEntry, error) {
	f.lastSearch = text
	out := []models.CatalogEntry{}
	for _, m := range f.movies {
		if strings.Contains(strings.ToLower(m.Title), strings.ToLower(text)) {
			out = append(out, f.view(m))
		}
	}
	return out, nil
}

func (f *fakeCatalog) SeedDefaultCatalog(ctx context.Context) (bool, error) { return true, nil }

func (f *fakeCatalog) Add(ctx context.Context, in models.NewCatalogEntry) (*models.CatalogEntry, error) {
	f.added = append(f.added, in)
	e := models.CatalogEntry{ID: "new-1", Title: in.Title, Description: in.Description, ImageURL: in.ImageURL,
		ReleaseYear: in.ReleaseYear, Rating: in.Rating}
	f.movies = append(f.movies, e)
	return &e, nil
}

type fakePosters struct {
	url         string
	contentType string
	size        int
}

func (f *fakePosters) Upload(ctx context.Context, contentType string, body []byte) (string, error) {
	f.contentType = contentType
	f.size = len(body)
	return f.url, nil
}

type fakeSeeder struct{ calls int }

func (f *fakeSeeder) SeedIfFirstRun(ctx context.Context) (bool, error) {
	f.calls++
	return true, nil
}

type testApp struct {
	*App
	out     *bytes.Buffer
	auth    *fakeAuth
	catalog *fakeCatalog
	posters *fakePosters
	seeder  *fakeSeeder
}

// newTestApp builds an App over fakes. input is what the user types, one
// entry per line.
func newTestApp(t *testing.T, input ...string) *testApp {
	t.Helper()

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), config.PrefsFileName))
	require.NoError(t, err)

	holder := session.NewHolder()
	ta := &testApp{
		out:     &bytes.Buffer{},
		auth:    &fakeAuth{session: holder, identity: models.Identity{ID: "u1", Email: "neo@example.com", DisplayName: "Neo"}},
		catalog: newFakeCatalog(),
		posters: &fakePosters{url: "https://cdn.example.com/posters/p1.png"},
		seeder:  &fakeSeeder{},
	}
	ta.App = &App{
		config:   &config.Config{},
		log:      logging.Nop(),
		auth:     ta.auth,
		catalog:  ta.catalog,
		posters:  ta.posters,
		settings: services.NewSettingsService(prefs.NewSQLiteRepository(db)),
		boot:     ta.seeder,
		session:  holder,
		db:       db,
		reader:   bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n")),
		out:      ta.out,
		mode:     ModeOffline,
	}
	ta.App.screens = newScreens(ta.App)
	t.Cleanup(func() { _ = db.Close() })
	return ta
}

func (ta *testApp) output() string {
	s := ta.out.String()
	ta.out.Reset()
	return s
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer, string) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func (ta *testApp) login(t *testing.T) {
	t.Helper()
	ta.session.Set(ta.auth.identity)
}
