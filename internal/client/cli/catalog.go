package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/filex"
)

// List shows the whole catalog.
func (a *App) List(ctx context.Context) error {
	return a.show(ctx, a.screens.catalog)
}

// Favs shows the signed-in user's favorites.
func (a *App) Favs(ctx context.Context) error {
	if err := a.requireLogin("favs"); err != nil {
		return err
	}
	return a.show(ctx, a.screens.favorites)
}

// Search runs a title and description search. Empty text is prompted for.
func (a *App) Search(ctx context.Context, text string) error {
	if text == "" {
		var err error
		if text, err = getSimpleText(a.reader, "Search for", a.out); err != nil {
			return err
		}
	}
	a.screens.query = text
	return a.show(ctx, a.screens.search)
}

// Show prints one movie. ref is an id or "#N" on the last shown list.
func (a *App) Show(ctx context.Context, ref string) error {
	picked, err := a.resolveRef(ref, false)
	if err != nil {
		return a.fail(common.E(common.KindValidation, "show", err))
	}

	e, err := run(ctx, a, a.screens.detail, func(ctx context.Context) (*models.CatalogEntry, error) {
		return a.catalog.GetByID(ctx, picked.ID)
	})
	if err != nil {
		return err
	}

	fav := ""
	if e.IsFavorite {
		fav = "  [favorite]"
	}
	a.printf("%s (%d)  rating %.1f%s\n", e.Title, e.ReleaseYear, e.Rating, fav)
	a.printf("%s\n", e.Description)
	if e.ImageURL != "" {
		a.printf("Poster: %s\n", e.ImageURL)
	}
	a.printf("id: %s\n", e.ID)
	return nil
}

// Fav marks or unmarks a favorite and redraws the active list.
func (a *App) Fav(ctx context.Context, ref string, on bool) error {
	if err := a.requireLogin("fav"); err != nil {
		return err
	}
	picked, err := a.resolveRef(ref, true)
	if err != nil {
		return a.fail(common.E(common.KindValidation, "fav", err))
	}

	userID := a.session.UserID()
	isFav, err := run(ctx, a, a.screens.favorite, func(ctx context.Context) (bool, error) {
		return a.catalog.SetFavorite(ctx, userID, picked.ID, on)
	})
	if err != nil {
		return err
	}

	name := picked.Title
	if name == "" {
		name = picked.ID
	}
	if isFav {
		a.printf("Added %s to favorites.\n", name)
	} else {
		a.printf("Removed %s from favorites.\n", name)
	}

	if l := a.screens.active; l != nil {
		return a.show(ctx, l)
	}
	return nil
}

// Add prompts for a new movie. posterPath, when set, is uploaded first and
// becomes the entry's image.
func (a *App) Add(ctx context.Context, posterPath string) error {
	if err := a.requireLogin("add"); err != nil {
		return err
	}

	in, err := a.readEntry()
	if err != nil {
		return err
	}
	if err := checkEntry(in); err != nil {
		return a.fail(err)
	}

	if posterPath != "" {
		body, contentType, err := filex.ReadPoster(posterPath)
		if err != nil {
			return a.fail(common.E(common.KindValidation, "poster", err))
		}
		url, err := run(ctx, a, a.screens.poster, func(ctx context.Context) (string, error) {
			return a.posters.Upload(ctx, contentType, body)
		})
		if err != nil {
			return err
		}
		in.ImageURL = url
	}

	e, err := run(ctx, a, a.screens.add, func(ctx context.Context) (*models.CatalogEntry, error) {
		return a.catalog.Add(ctx, in)
	})
	if err != nil {
		return err
	}
	a.printf("Added %q as %s.\n", e.Title, e.ID)
	return nil
}

func (a *App) readEntry() (models.NewCatalogEntry, error) {
	var in models.NewCatalogEntry
	var err error

	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return in, err
	}
	if in.Description, err = getMultiline(a.reader, "Description", a.out); err != nil {
		return in, err
	}

	year, err := getSimpleText(a.reader, "Release year", a.out)
	if err != nil {
		return in, err
	}
	if in.ReleaseYear, err = strconv.Atoi(year); err != nil {
		return in, a.fail(common.E(common.KindValidation, "add", errors.New("release year must be a number")))
	}

	rating, err := getSimpleText(a.reader, "Rating (0-10)", a.out)
	if err != nil {
		return in, err
	}
	if in.Rating, err = strconv.ParseFloat(strings.Replace(rating, ",", ".", 1), 64); err != nil {
		return in, a.fail(common.E(common.KindValidation, "add", errors.New("rating must be a number")))
	}
	return in, nil
}
