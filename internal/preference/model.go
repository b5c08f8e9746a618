package preference

import (
	"errors"
	"fmt"

	"souq-be/internal/utils"
)

const (
	FavoritesName = "favorites"
	SettingsName  = "settings"
)

type Settings struct {
	Language      string `json:"language"`
	Currency      string `json:"currency"`
	Notifications bool   `json:"notifications"`
}

// DefaultSettings applies to users who never saved any.
func DefaultSettings() Settings {
	return Settings{Language: "ar", Currency: "SAR", Notifications: true}
}

var (
	ErrMissingUser     = errors.New("missing user id")
	ErrInvalidLanguage = fmt.Errorf("%w: language must be ar or en", utils.ErrInvalidInput)
	ErrInvalidCurrency = fmt.Errorf("%w: currency must be a 3-letter code", utils.ErrInvalidInput)
	ErrInvalidItem     = fmt.Errorf("%w: item id cannot be empty", utils.ErrInvalidInput)
)

var languages = map[string]bool{"ar": true, "en": true}
