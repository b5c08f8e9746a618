package preference

import (
	"context"
	"slices"
	"strings"

	"souq-be/internal/events"
	"souq-be/internal/logger"
	"souq-be/internal/store"

	"go.uber.org/zap"
)

type Service interface {
	// ToggleFavorite adds or removes itemID and reports whether it is now a
	// favorite.
	ToggleFavorite(ctx context.Context, userID, itemID string) (bool, error)
	Favorites(ctx context.Context, userID string) ([]string, error)
	GetSettings(ctx context.Context, userID string) (Settings, error)
	SaveSettings(ctx context.Context, userID string, s Settings) (Settings, error)
}

type service struct {
	favorites *store.Document[map[string][]string]
	settings  *store.Document[map[string]Settings]
}

func NewService(s *store.Store) Service {
	return &service{
		favorites: store.NewDocument[map[string][]string](s, FavoritesName, events.TopicPreferences),
		settings:  store.NewDocument[map[string]Settings](s, SettingsName, events.TopicPreferences),
	}
}

func cleanUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrMissingUser
	}
	return userID, nil
}

func (s *service) ToggleFavorite(ctx context.Context, userID, itemID string) (bool, error) {
	userID, err := cleanUser(userID)
	if err != nil {
		return false, err
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return false, ErrInvalidItem
	}

	var now bool
	_, err = s.favorites.Mutate(ctx, func(m *map[string][]string) error {
		if *m == nil {
			*m = make(map[string][]string)
		}
		list := (*m)[userID]
		if i := slices.Index(list, itemID); i >= 0 {
			(*m)[userID] = slices.Delete(list, i, i+1)
			now = false
			return nil
		}
		(*m)[userID] = append(list, itemID)
		now = true
		return nil
	})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to toggle favorite",
			zap.String("layer", "service"),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return false, err
	}
	return now, nil
}

func (s *service) Favorites(ctx context.Context, userID string) ([]string, error) {
	userID, err := cleanUser(userID)
	if err != nil {
		return nil, err
	}
	m, err := s.favorites.Load(ctx)
	if err != nil {
		return nil, err
	}
	list := m[userID]
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func (s *service) GetSettings(ctx context.Context, userID string) (Settings, error) {
	userID, err := cleanUser(userID)
	if err != nil {
		return Settings{}, err
	}
	m, err := s.settings.Load(ctx)
	if err != nil {
		return Settings{}, err
	}
	if st, ok := m[userID]; ok {
		return st, nil
	}
	return DefaultSettings(), nil
}

func (s *service) SaveSettings(ctx context.Context, userID string, st Settings) (Settings, error) {
	userID, err := cleanUser(userID)
	if err != nil {
		return Settings{}, err
	}

	def := DefaultSettings()
	st.Language = strings.ToLower(strings.TrimSpace(st.Language))
	if st.Language == "" {
		st.Language = def.Language
	}
	st.Currency = strings.ToUpper(strings.TrimSpace(st.Currency))
	if st.Currency == "" {
		st.Currency = def.Currency
	}
	if !languages[st.Language] {
		return Settings{}, ErrInvalidLanguage
	}
	if len(st.Currency) != 3 {
		return Settings{}, ErrInvalidCurrency
	}

	_, err = s.settings.Mutate(ctx, func(m *map[string]Settings) error {
		if *m == nil {
			*m = make(map[string]Settings)
		}
		(*m)[userID] = st
		return nil
	})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to save settings",
			zap.String("layer", "service"),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return Settings{}, err
	}
	return st, nil
}
