package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smokefree/internal/modules/settings"
)

type fakeRepo struct {
	rows       map[string]*settings.Settings
	cached     map[string]*settings.Settings
	cacheDown  bool
	upserts    int
	updates    int
	dbReads    int
	invalidate []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rows:   map[string]*settings.Settings{},
		cached: map[string]*settings.Settings{},
	}
}

func clone(s *settings.Settings) *settings.Settings {
	c := *s
	return &c
}

func (f *fakeRepo) GetSettingsByDeviceID(_ context.Context, deviceID string) (*settings.Settings, error) {
	f.dbReads++
	s, ok := f.rows[deviceID]
	if !ok {
		return nil, settings.ErrSettingsNotFound
	}
	return clone(s), nil
}

func (f *fakeRepo) UpsertSettings(_ context.Context, s *settings.Settings) (*settings.Settings, error) {
	f.upserts++
	f.rows[s.DeviceID] = clone(s)
	return clone(s), nil
}

func (f *fakeRepo) UpdateSettings(_ context.Context, s *settings.Settings) (*settings.Settings, error) {
	if _, ok := f.rows[s.DeviceID]; !ok {
		return nil, settings.ErrSettingsNotFound
	}
	f.updates++
	f.rows[s.DeviceID] = clone(s)
	return clone(s), nil
}

func (f *fakeRepo) ExpirePremium(_ context.Context, now time.Time) ([]string, error) {
	var ids []string
	for id, s := range f.rows {
		if s.PremiumEnabled && s.PremiumExpiresAt != nil && !s.PremiumExpiresAt.After(now) {
			s.PremiumEnabled = false
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeRepo) GetPushTargets(_ context.Context, deviceIDs []string) ([]settings.PushTarget, error) {
	var out []settings.PushTarget
	for _, id := range deviceIDs {
		if s, ok := f.rows[id]; ok && s.PushToken != nil {
			out = append(out, settings.PushTarget{DeviceID: id, PushToken: *s.PushToken, Language: s.Language})
		}
	}
	return out, nil
}

func (f *fakeRepo) GetSettingsCache(_ context.Context, deviceID string) (*settings.Settings, error) {
	if f.cacheDown {
		return nil, settings.ErrSettingsInternal
	}
	s, ok := f.cached[deviceID]
	if !ok {
		return nil, settings.ErrSettingsNotFound
	}
	return clone(s), nil
}

func (f *fakeRepo) SaveSettingsCache(_ context.Context, s *settings.Settings) error {
	if f.cacheDown {
		return settings.ErrSettingsInternal
	}
	f.cached[s.DeviceID] = clone(s)
	return nil
}

func (f *fakeRepo) DeleteSettingsCache(_ context.Context, deviceIDs ...string) error {
	for _, id := range deviceIDs {
		delete(f.cached, id)
	}
	f.invalidate = append(f.invalidate, deviceIDs...)
	return nil
}

func newTestUseCase(repo *fakeRepo) settings.UseCase {
	return NewSettingsUseCase(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func strPtr(s string) *string { return &s }

func TestUpsertSettings_CreatesWithDefaults(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo)

	got, err := uc.UpsertSettings(context.Background(), settings.UpsertSettingsRequest{
		DeviceID:           "dev-1",
		WakeTime:           "07:00",
		SleepTime:          "23:00",
		DailyCigaretteGoal: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, settings.LanguageEN, got.Language)
	assert.Equal(t, settings.BackgroundGray, got.BackgroundColor)
	assert.False(t, got.PremiumEnabled)
	assert.Equal(t, 1, repo.upserts)
	assert.Contains(t, repo.cached, "dev-1")
}

func TestUpsertSettings_KeepsStoredOptionalFields(t *testing.T) {
	repo := newFakeRepo()
	repo.rows["dev-1"] = &settings.Settings{
		DeviceID: "dev-1", WakeTime: "07:00", SleepTime: "23:00", DailyCigaretteGoal: 12,
		Language: settings.LanguageDE, BackgroundColor: settings.BackgroundBlack, PremiumEnabled: true,
	}
	uc := newTestUseCase(repo)

	got, err := uc.UpsertSettings(context.Background(), settings.UpsertSettingsRequest{
		DeviceID: "dev-1", WakeTime: "06:30", SleepTime: "22:00", DailyCigaretteGoal: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, "06:30", got.WakeTime)
	assert.Equal(t, 8, got.DailyCigaretteGoal)
	assert.Equal(t, settings.LanguageDE, got.Language)
	assert.Equal(t, settings.BackgroundBlack, got.BackgroundColor)
	assert.True(t, got.PremiumEnabled)
}

func TestUpsertSettings_SameRequestTwiceIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()
	req := settings.UpsertSettingsRequest{
		DeviceID: "dev-1", WakeTime: "06:45", SleepTime: "22:15", DailyCigaretteGoal: 9,
		Language: strPtr(settings.LanguageDE), PushToken: strPtr("fcm-token"),
	}

	first, err := uc.UpsertSettings(ctx, req)
	require.NoError(t, err)
	row := clone(repo.rows["dev-1"])

	second, err := uc.UpsertSettings(ctx, req)
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	first.UpdatedAt, second.UpdatedAt = time.Time{}, time.Time{}
	assert.Equal(t, first, second)
	row.UpdatedAt, repo.rows["dev-1"].UpdatedAt = time.Time{}, time.Time{}
	assert.Equal(t, row, repo.rows["dev-1"])
	assert.Equal(t, 2, repo.upserts)
}

func TestUpsertSettings_CannotChangePremium(t *testing.T) {
	repo := newFakeRepo()
	exp := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	repo.rows["dev-1"] = &settings.Settings{
		DeviceID: "dev-1", WakeTime: "07:00", SleepTime: "23:00", DailyCigaretteGoal: 12,
		Language: settings.LanguageEN, BackgroundColor: settings.BackgroundGray,
		PremiumEnabled: true, PremiumExpiresAt: &exp, PromoCode: strPtr("EASY EASY"),
	}
	uc := newTestUseCase(repo)
	ctx := context.Background()

	_, err := uc.UpsertSettings(ctx, settings.UpsertSettingsRequest{DeviceID: "dev-1", WakeTime: "07:00", SleepTime: "23:00", DailyCigaretteGoal: 10})
	require.NoError(t, err)
	_, err = uc.UpdateSettings(ctx, "dev-1", settings.UpdateSettingsRequest{BackgroundColor: strPtr(settings.BackgroundBlack)})
	require.NoError(t, err)

	got := repo.rows["dev-1"]
	assert.True(t, got.PremiumEnabled)
	assert.Equal(t, &exp, got.PremiumExpiresAt)
	assert.Equal(t, "EASY EASY", *got.PromoCode)
	assert.Equal(t, settings.BackgroundBlack, got.BackgroundColor)
}

func TestGetSettings_CacheFirst(t *testing.T) {
	repo := newFakeRepo()
	repo.rows["dev-1"] = &settings.Settings{DeviceID: "dev-1", WakeTime: "07:00", SleepTime: "23:00", DailyCigaretteGoal: 5}
	uc := newTestUseCase(repo)

	_, err := uc.GetSettings(context.Background(), "dev-1")
	require.NoError(t, err)
	_, err = uc.GetSettings(context.Background(), "dev-1")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.dbReads)
}

func TestGetSettings_CacheOutageFallsBackToDB(t *testing.T) {
	repo := newFakeRepo()
	repo.cacheDown = true
	repo.rows["dev-1"] = &settings.Settings{DeviceID: "dev-1", WakeTime: "07:00", SleepTime: "23:00", DailyCigaretteGoal: 5}
	uc := newTestUseCase(repo)

	got, err := uc.GetSettings(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.DailyCigaretteGoal)
}

func TestGetSettings_NotFound(t *testing.T) {
	uc := newTestUseCase(newFakeRepo())
	_, err := uc.GetSettings(context.Background(), "missing")
	assert.ErrorIs(t, err, settings.ErrSettingsNotFound)
}

func TestUpdateSettings(t *testing.T) {
	repo := newFakeRepo()
	repo.rows["dev-1"] = &settings.Settings{DeviceID: "dev-1", WakeTime: "07:00", SleepTime: "23:00", DailyCigaretteGoal: 5, Language: "en"}
	uc := newTestUseCase(repo)

	t.Run("partial", func(t *testing.T) {
		got, err := uc.UpdateSettings(context.Background(), "dev-1", settings.UpdateSettingsRequest{Language: strPtr("de")})
		require.NoError(t, err)
		assert.Equal(t, "de", got.Language)
		assert.Equal(t, "07:00", got.WakeTime)
		assert.Equal(t, 1, repo.updates)
	})

	t.Run("no changes skip the write", func(t *testing.T) {
		_, err := uc.UpdateSettings(context.Background(), "dev-1", settings.UpdateSettingsRequest{Language: strPtr("de")})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.updates)
	})

	t.Run("missing device", func(t *testing.T) {
		_, err := uc.UpdateSettings(context.Background(), "nope", settings.UpdateSettingsRequest{Language: strPtr("en")})
		assert.ErrorIs(t, err, settings.ErrSettingsNotFound)
	})
}

func TestGrantAndExpirePremium(t *testing.T) {
	repo := newFakeRepo()
	repo.rows["dev-1"] = &settings.Settings{DeviceID: "dev-1", WakeTime: "07:00", SleepTime: "23:00", DailyCigaretteGoal: 5}
	uc := newTestUseCase(repo)
	ctx := context.Background()

	expires := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, uc.GrantPremium(ctx, "dev-1", "EASY EASY", &expires))
	assert.True(t, repo.rows["dev-1"].PremiumEnabled)
	assert.Equal(t, "EASY EASY", *repo.rows["dev-1"].PromoCode)

	n, err := uc.ExpirePremium(ctx, expires.Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = uc.ExpirePremium(ctx, expires.Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.False(t, repo.rows["dev-1"].PremiumEnabled)
	assert.Equal(t, []string{"dev-1"}, repo.invalidate)
}

func TestGrantPremium_WithoutSettings(t *testing.T) {
	uc := newTestUseCase(newFakeRepo())
	err := uc.GrantPremium(context.Background(), "ghost", "EASY22", nil)
	assert.ErrorIs(t, err, settings.ErrSettingsNotFound)
}
