package services

import "github.com/dmitrijs2005/moviedeck/internal/server/models"

const tmdbPoster = "https://image.tmdb.org/t/p/original/"

// SeedMovies returns the default catalog. Every call returns fresh values.
func SeedMovies() []*models.Movie {
	return []*models.Movie{
		{
			ID:          "inception",
			Title:       "Inception",
			Description: "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea into the mind of a CEO.",
			ImageURL:    tmdbPoster + "qmDpIHrmpJINaRKAfWQfftjCdyi.jpg",
			ReleaseYear: 2010,
			Rating:      8.8,
		},
		{
			ID:          "the_dark_knight",
			Title:       "The Dark Knight",
			Description: "Batman faces the greatest threat Gotham has ever known: the Joker, a criminal who wants to plunge the city into chaos.",
			ImageURL:    tmdbPoster + "qJ2tW6WMUDux911r6m7haRef0WH.jpg",
			ReleaseYear: 2008,
			Rating:      9.0,
		},
		{
			ID:          "interstellar",
			Title:       "Interstellar",
			Description: "A team of explorers travels through a wormhole in space in an attempt to ensure the survival of humanity.",
			ImageURL:    tmdbPoster + "rAiYTfKGqDCRIIqo664sY9XZIvQ.jpg",
			ReleaseYear: 2014,
			Rating:      8.6,
		},
		{
			ID:          "the_matrix",
			Title:       "The Matrix",
			Description: "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.",
			ImageURL:    tmdbPoster + "f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
			ReleaseYear: 1999,
			Rating:      8.7,
		},
		{
			ID:          "pulp_fiction",
			Title:       "Pulp Fiction",
			Description: "The lives of two hitmen, a boxer, a gangster's wife and a pair of bandits intertwine in four tales of violence and redemption.",
			ImageURL:    tmdbPoster + "tptjnB6XQW7hk2Q3mAkPmVnHjIv.jpg",
			ReleaseYear: 1994,
			Rating:      8.9,
		},
		{
			ID:          "the_shawshank_redemption",
			Title:       "The Shawshank Redemption",
			Description: "A banker is sentenced to life in prison for the murder of his wife and her lover, despite his claims of innocence.",
			ImageURL:    tmdbPoster + "q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg",
			ReleaseYear: 1994,
			Rating:      9.3,
		},
		{
			ID:          "forrest_gump",
			Title:       "Forrest Gump",
			Description: "The Kennedy and Johnson presidencies, the Vietnam War, Watergate and other history unfold through the eyes of a man from Alabama with an IQ of 75.",
			ImageURL:    tmdbPoster + "arw2vcBveWOVZr6pxd9XTd1TdQa.jpg",
			ReleaseYear: 1994,
			Rating:      8.8,
		},
		{
			ID:          "fight_club",
			Title:       "Fight Club",
			Description: "An insomniac office worker and a devil-may-care soap maker form an underground fight club that evolves into something much more dangerous.",
			ImageURL:    tmdbPoster + "bptfVGEQuv6vDTIMVCHjJ9Dz8PX.jpg",
			ReleaseYear: 1999,
			Rating:      8.8,
		},
		{
			ID:          "the_godfather",
			Title:       "The Godfather",
			Description: "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
			ImageURL:    tmdbPoster + "3bhkrj58Vtu7enYsRolD1fZdja1.jpg",
			ReleaseYear: 1972,
			Rating:      9.2,
		},
		{
			ID:          "gladiator",
			Title:       "Gladiator",
			Description: "A betrayed Roman general becomes a gladiator and seeks revenge against the corrupt emperor who murdered his family and sent him into slavery.",
			ImageURL:    tmdbPoster + "ty8TGRuvJLPUmAR1H1nRIsgwvim.jpg",
			ReleaseYear: 2000,
			Rating:      8.5,
		},
	}
}
