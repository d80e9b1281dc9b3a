package api

import "time"

type Movie struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	ReleaseYear int     `json:"release_year"`
	Rating      float64 `json:"rating"`
	IsFavorite  bool    `json:"is_favorite"`
}

type Identity struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	FavoriteIDs []string `json:"favorite_ids"`
}

type Profile struct {
	Identity       Identity   `json:"identity"`
	FavoritesCount int        `json:"favorites_count"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInFederatedRequest struct {
	IDToken string `json:"id_token"`
}

// AuthResponse is returned by every sign-in flavour.
type AuthResponse struct {
	Identity     Identity `json:"identity"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	IsNewUser    bool     `json:"is_new_user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetResponse struct{}

type ConfirmPasswordResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type ConfirmPasswordResetResponse struct{}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SignOutResponse struct{}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	Profile Profile `json:"profile"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

type UpdateProfileResponse struct {
	Identity Identity `json:"identity"`
}

type ListMoviesRequest struct{}

type ListMoviesResponse struct {
	Movies []Movie `json:"movies"`
}

type GetMovieRequest struct {
	ID string `json:"id"`
}

type GetMovieResponse struct {
	Movie Movie `json:"movie"`
}

type SearchMoviesRequest struct {
	Query string `json:"query"`
}

type SearchMoviesResponse struct {
	Movies []Movie `json:"movies"`
}

type ListFavoritesRequest struct {
	UserID string `json:"user_id"`
}

type ListFavoritesResponse struct {
	Movies []Movie `json:"movies"`
}

type SetFavoriteRequest struct {
	UserID     string `json:"user_id"`
	MovieID    string `json:"movie_id"`
	IsFavorite bool   `json:"is_favorite"`
}

type SetFavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

type SeedCatalogRequest struct{}

type SeedCatalogResponse struct {
	Seeded bool `json:"seeded"`
	Count  int  `json:"count"`
}

type AddMovieRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	ReleaseYear int     `json:"release_year"`
	Rating      float64 `json:"rating"`
}

type AddMovieResponse struct {
	Movie Movie `json:"movie"`
}

type CreatePosterUploadRequest struct {
	ContentType string `json:"content_type"`
}

type CreatePosterUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}
