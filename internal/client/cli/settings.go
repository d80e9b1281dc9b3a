package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/moviedeck/internal/common"
)

func settingValues(s models.Settings) map[string]bool {
	return map[string]bool{
		prefs.KeyNotificationsEnabled: s.NotificationsEnabled,
		prefs.KeyAutoplayTrailers:     s.AutoplayTrailers,
		prefs.KeyDarkMode:             s.DarkMode,
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func parseToggle(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not on or off", v)
}

func (a *App) printSettings(s models.Settings) {
	values := settingValues(s)
	for _, key := range prefs.SettingKeys {
		a.printf("%-22s %s\n", key, onOff(values[key]))
	}
}

// Settings prints the local toggles.
func (a *App) Settings(ctx context.Context) error {
	s, err := run(ctx, a, a.screens.settings, a.settings.Load)
	if err != nil {
		return err
	}
	a.printSettings(s)
	return nil
}

// Set changes one toggle and prints the result.
func (a *App) Set(ctx context.Context, key, value string) error {
	on, err := parseToggle(value)
	if err != nil {
		return a.fail(common.E(common.KindValidation, "set", err))
	}

	s, err := run(ctx, a, a.screens.settings, func(ctx context.Context) (models.Settings, error) {
		if err := a.settings.Set(ctx, key, on); err != nil {
			return models.Settings{}, err
		}
		return a.settings.Load(ctx)
	})
	if err != nil {
		return err
	}
	a.printSettings(s)
	return nil
}
