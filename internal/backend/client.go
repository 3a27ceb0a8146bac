package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dominion-AI/suitsadmin/internal/session"
)

// requestTimeout: tek istek için üst sınır. Aşılırsa istek hata olarak
// döner, otomatik tekrar yapılmaz.
const requestTimeout = 30 * time.Second

// ErrSessionExpired: refresh de başarısız oldu, oturum temizlendi.
// HTTP katmanı bunu 401 + /login?expired=true yönlendirmesine çevirir.
var ErrSessionExpired = errors.New("oturum süresi doldu, yeniden giriş yapılmalı")

// APIError: backend'den dönen 2xx dışı cevap
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %d: %s", e.StatusCode, e.Message)
}

// Client: backend'e giden TÜM HTTP trafiğinin tek çıkış noktası.
// Bearer token'ı oturumdan ekler, 401'de bir kez sessiz refresh dener
// ve orijinal isteği bir kez tekrarlar. Başka retry/backoff yoktur.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   *session.Store
}

func New(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		httpc: &http.Client{
			Timeout: requestTimeout,
		},
		store: store,
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// PostPublic: bearer token eklemeden istek atar (login, register).
// 401 burada refresh tetiklemez, olduğu gibi APIError olarak döner.
func (c *Client) PostPublic(ctx context.Context, path string, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, http.MethodPost, path, payload, "")
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	sess, err := c.store.Current()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return ErrSessionExpired
		}
		return err
	}

	payload, err := marshalBody(body)
	if err != nil {
		return err
	}

	access := sess.AccessToken
	refreshed := false

	// Süresi geçtiği belli olan token'la istek atma, önce refresh dene
	if session.AccessExpired(access) {
		access, err = c.refresh(ctx, sess.RefreshToken)
		if err != nil {
			return err
		}
		refreshed = true
	}

	resp, err := c.send(ctx, method, path, payload, access)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)

		// Tam bir kez refresh + tekrar. İkinci 401 oturumu bitirir.
		if refreshed {
			if derr := c.store.Destroy(); derr != nil {
				return fmt.Errorf("oturum temizlenemedi: %w", derr)
			}
			return ErrSessionExpired
		}

		access, err = c.refresh(ctx, sess.RefreshToken)
		if err != nil {
			return err
		}

		resp, err = c.send(ctx, method, path, payload, access)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp)
			if derr := c.store.Destroy(); derr != nil {
				return fmt.Errorf("oturum temizlenemedi: %w", derr)
			}
			return ErrSessionExpired
		}
	}

	return decodeResponse(resp, out)
}

// refresh: refresh token ile yeni access token alır. Başarısızsa
// oturum temizlenir ve ErrSessionExpired döner.
func (c *Client) refresh(ctx context.Context, refreshToken string) (string, error) {
	payload, err := marshalBody(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}

	resp, err := c.send(ctx, http.MethodPost, "/users/token/refresh/", payload, "")
	if err != nil {
		return "", err
	}

	var body struct {
		Access string `json:"access"`
	}
	if err := decodeResponse(resp, &body); err != nil || body.Access == "" {
		if derr := c.store.Destroy(); derr != nil {
			return "", fmt.Errorf("oturum temizlenemedi: %w", derr)
		}
		return "", ErrSessionExpired
	}

	if err := c.store.UpdateAccess(body.Access); err != nil {
		return "", err
	}
	return body.Access, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, access string) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("HTTP isteği oluşturulamadı: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend isteği başarısız: %w", err)
	}
	return resp, nil
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("istek gövdesi serileştirilemedi: %w", err)
	}
	return b, nil
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend cevabı çözümlenemedi: %w", err)
	}
	return nil
}

// readErrorMessage: backend'in {"error": ...} / {"detail": ...} /
// {"message": ...} gövdelerinden okunabilir mesaj çıkarır.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "backend hatası"
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err == nil {
		for _, key := range []string{"error", "detail", "message"} {
			if v, ok := parsed[key].(string); ok && v != "" {
				return v
			}
		}
	}
	return string(raw)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
