// Package remote is the HTTP client for the smokefree store API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smokefree/internal/device/model"
	"smokefree/internal/modules/alarm"
	"smokefree/internal/modules/dailylog"
	"smokefree/internal/modules/promo"
	"smokefree/internal/modules/settings"
	"smokefree/pkg/lib/statistics"
)

const (
	defaultAPIURL  = "http://127.0.0.1:8080"
	defaultTimeout = 10 * time.Second
	userAgent      = "smokectl/1"
)

// ErrNotFound is returned when the store answers 404.
var ErrNotFound = errors.New("remote: not found")

// APIError carries a non-2xx reply from the store.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Store is the set of store operations the device relies on.
type Store interface {
	GetSettings(ctx context.Context, deviceID string) (*model.Settings, error)
	CreateOrUpdateSettings(ctx context.Context, s *model.Settings) (*model.Settings, error)
	UpdateSettings(ctx context.Context, s *model.Settings) (*model.Settings, error)
	GetLog(ctx context.Context, deviceID, date string) (*model.DailyLog, error)
	CreateOrUpdateLog(ctx context.Context, l *model.DailyLog) (*model.DailyLog, error)
	IncrementLog(ctx context.Context, deviceID, date string) (*model.DailyLog, error)
	GetAlarms(ctx context.Context, deviceID, date string) (*model.AlarmSchedule, error)
	SaveAlarms(ctx context.Context, a *model.AlarmSchedule) error
	GetStatistics(ctx context.Context, deviceID string, days int) (*statistics.Statistics, error)
	ValidatePromo(ctx context.Context, deviceID, code string) (*promo.ValidatePromoResponse, error)
}

var _ Store = (*Client)(nil)

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient builds a client for apiURL. A bare host:port is treated as http.
func NewClient(apiURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

func (c *Client) GetSettings(ctx context.Context, deviceID string) (*model.Settings, error) {
	var payload settings.SettingsResponse
	if err := c.do(ctx, http.MethodGet, "/api/settings/"+deviceID, nil, &payload); err != nil {
		return nil, err
	}
	return fromSettingsResponse(&payload), nil
}

func (c *Client) CreateOrUpdateSettings(ctx context.Context, s *model.Settings) (*model.Settings, error) {
	body := settings.UpsertSettingsRequest{
		DeviceID:           s.DeviceID,
		WakeTime:           s.WakeTime,
		SleepTime:          s.SleepTime,
		DailyCigaretteGoal: s.DailyCigaretteGoal,
		Language:           optString(s.Language),
		BackgroundColor:    optString(s.BackgroundColor),
	}
	var payload settings.SettingsResponse
	if err := c.do(ctx, http.MethodPost, "/api/settings", body, &payload); err != nil {
		return nil, err
	}
	return fromSettingsResponse(&payload), nil
}

// UpdateSettings sends every user-editable field of s as a partial update.
func (c *Client) UpdateSettings(ctx context.Context, s *model.Settings) (*model.Settings, error) {
	body := settings.UpdateSettingsRequest{
		WakeTime:        optString(s.WakeTime),
		SleepTime:       optString(s.SleepTime),
		Language:        optString(s.Language),
		BackgroundColor: optString(s.BackgroundColor),
	}
	if s.DailyCigaretteGoal > 0 {
		goal := s.DailyCigaretteGoal
		body.DailyCigaretteGoal = &goal
	}
	var payload settings.SettingsResponse
	if err := c.do(ctx, http.MethodPut, "/api/settings/"+s.DeviceID, body, &payload); err != nil {
		return nil, err
	}
	return fromSettingsResponse(&payload), nil
}

// GetLog returns ErrNotFound when the store only has its synthetic zero log.
func (c *Client) GetLog(ctx context.Context, deviceID, date string) (*model.DailyLog, error) {
	var payload dailylog.DailyLogResponse
	if err := c.do(ctx, http.MethodGet, logPath(deviceID, date), nil, &payload); err != nil {
		return nil, err
	}
	if payload.ID == nil {
		return nil, ErrNotFound
	}
	return fromLogResponse(&payload), nil
}

func (c *Client) CreateOrUpdateLog(ctx context.Context, l *model.DailyLog) (*model.DailyLog, error) {
	body := dailylog.UpsertDailyLogRequest{
		DeviceID:         l.DeviceID,
		Date:             l.Date,
		CigarettesSmoked: l.CigarettesSmoked,
		CigarettesGoal:   l.CigarettesGoal,
	}
	var payload dailylog.DailyLogResponse
	if err := c.do(ctx, http.MethodPost, "/api/logs", body, &payload); err != nil {
		return nil, err
	}
	return fromLogResponse(&payload), nil
}

func (c *Client) IncrementLog(ctx context.Context, deviceID, date string) (*model.DailyLog, error) {
	var payload dailylog.DailyLogResponse
	if err := c.do(ctx, http.MethodPut, logPath(deviceID, date)+"/increment", nil, &payload); err != nil {
		return nil, err
	}
	return fromLogResponse(&payload), nil
}

// GetAlarms returns ErrNotFound when no schedule is stored for the date.
func (c *Client) GetAlarms(ctx context.Context, deviceID, date string) (*model.AlarmSchedule, error) {
	var payload alarm.AlarmScheduleResponse
	path := "/api/alarms/" + deviceID + "/" + date
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	if len(payload.AlarmTimes) == 0 {
		return nil, ErrNotFound
	}
	return &model.AlarmSchedule{DeviceID: payload.DeviceID, Date: payload.Date, AlarmTimes: payload.AlarmTimes}, nil
}

func (c *Client) SaveAlarms(ctx context.Context, a *model.AlarmSchedule) error {
	body := alarm.SaveAlarmsRequest{DeviceID: a.DeviceID, Date: a.Date, AlarmTimes: a.AlarmTimes}
	return c.do(ctx, http.MethodPost, "/api/alarms", body, nil)
}

// GetStatistics asks for a days-long window; zero uses the server default.
func (c *Client) GetStatistics(ctx context.Context, deviceID string, days int) (*statistics.Statistics, error) {
	rel := &url.URL{Path: "/api/stats/" + deviceID}
	if days > 0 {
		rel.RawQuery = url.Values{"days": []string{strconv.Itoa(days)}}.Encode()
	}
	var payload statistics.Statistics
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) ValidatePromo(ctx context.Context, deviceID, code string) (*promo.ValidatePromoResponse, error) {
	body := promo.ValidatePromoRequest{Code: code, DeviceID: deviceID}
	var payload promo.ValidatePromoResponse
	if err := c.do(ctx, http.MethodPost, "/api/promo/validate", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return errors.New("remote client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if dest == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func logPath(deviceID, date string) string {
	return "/api/logs/" + deviceID + "/" + date
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromSettingsResponse(r *settings.SettingsResponse) *model.Settings {
	return &model.Settings{
		DeviceID:           r.DeviceID,
		WakeTime:           r.WakeTime,
		SleepTime:          r.SleepTime,
		DailyCigaretteGoal: r.DailyCigaretteGoal,
		Language:           r.Language,
		BackgroundColor:    r.BackgroundColor,
		PremiumEnabled:     r.PremiumEnabled,
		PremiumExpiresAt:   r.PremiumExpiresAt,
		PromoCode:          r.PromoCode,
		UpdatedAt:          r.UpdatedAt,
	}
}

func fromLogResponse(r *dailylog.DailyLogResponse) *model.DailyLog {
	return &model.DailyLog{
		DeviceID:         r.DeviceID,
		Date:             r.Date,
		CigarettesSmoked: r.CigarettesSmoked,
		CigarettesGoal:   r.CigarettesGoal,
	}
}
