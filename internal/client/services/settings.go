package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/moviedeck/internal/common"
)

// DefaultSettings is what a fresh install shows.
var DefaultSettings = models.Settings{NotificationsEnabled: true}

type SettingsService struct {
	prefs prefs.Repository
}

func NewSettingsService(p prefs.Repository) *SettingsService {
	return &SettingsService{prefs: p}
}

func (s *SettingsService) Load(ctx context.Context) (models.Settings, error) {
	out := DefaultSettings
	fields := map[string]*bool{
		prefs.KeyNotificationsEnabled: &out.NotificationsEnabled,
		prefs.KeyAutoplayTrailers:     &out.AutoplayTrailers,
		prefs.KeyDarkMode:             &out.DarkMode,
	}
	for key, dst := range fields {
		v, ok, err := s.prefs.GetBool(ctx, key)
		if err != nil {
			return models.Settings{}, err
		}
		if ok {
			*dst = v
		}
	}
	return out, nil
}

// Set changes one toggle. Unknown keys are a validation error.
func (s *SettingsService) Set(ctx context.Context, key string, value bool) error {
	if !slices.Contains(prefs.SettingKeys, key) {
		return common.E(common.KindValidation, "SettingsService.Set", fmt.Errorf("unknown setting %q", key))
	}
	return s.prefs.SetBool(ctx, key, value)
}
