package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/orcafacil/internal/backend"
	"github.com/diewo77/orcafacil/internal/probe"
	"github.com/diewo77/orcafacil/internal/settings"
)

func newSettingsFixture(t *testing.T) (*SettingsHandler, settings.Store, *int) {
	t.Helper()
	store := settings.NewMemStore()
	dials := 0
	h := backend.New(store, "")
	h.SetDialer(func(dsn string) (*gorm.DB, error) {
		dials++
		memDSN := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
		return gorm.Open(sqlite.Open(memDSN), &gorm.Config{})
	})
	p := probe.New(store, func() error { return nil }, time.Minute)
	return NewSettingsHandler(store, h, p), store, &dials
}

func TestSettingsGetNeverEchoesKey(t *testing.T) {
	sh, store, _ := newSettingsFixture(t)
	if err := store.Save(settings.Credentials{URL: "db.example.com", Key: "super-secret"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	w := httptest.NewRecorder()
	sh.Get(w, httptest.NewRequest(http.MethodGet, "/config", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "super-secret") {
		t.Fatalf("key leaked: %s", w.Body.String())
	}
	var resp struct {
		Configured bool   `json:"configured"`
		BackendURL string `json:"backend_url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Configured || resp.BackendURL != "db.example.com" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestSettingsSaveRebuildsHandle(t *testing.T) {
	sh, store, dials := newSettingsFixture(t)

	body := `{"backend_url":"db.example.com","backend_key":"k1"}`
	w := httptest.NewRecorder()
	sh.Save(w, httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if *dials != 1 {
		t.Fatalf("expected one dial on save, got %d", *dials)
	}
	creds, err := store.Get()
	if err != nil || creds.Key != "k1" {
		t.Fatalf("credentials not persisted: %#v %v", creds, err)
	}

	// Replacing the credentials dials again with the new DSN.
	body2 := `{"backend_url":"other.example.com","backend_key":"k2"}`
	w2 := httptest.NewRecorder()
	sh.Save(w2, httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(body2)))
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w2.Code)
	}
	if *dials != 2 {
		t.Fatalf("expected a second dial, got %d", *dials)
	}
}

func TestSettingsSaveRequiresBothFields(t *testing.T) {
	sh, _, dials := newSettingsFixture(t)
	w := httptest.NewRecorder()
	sh.Save(w, httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(`{"backend_url":"x"}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if *dials != 0 {
		t.Fatal("must not dial on invalid input")
	}
}

func TestSettingsClear(t *testing.T) {
	sh, store, _ := newSettingsFixture(t)
	if err := store.Save(settings.Credentials{URL: "u", Key: "k"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	w := httptest.NewRecorder()
	sh.Clear(w, httptest.NewRequest(http.MethodDelete, "/config", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	creds, err := store.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if creds.Configured() {
		t.Fatal("credentials must be gone after clear")
	}
}

func TestSettingsSaveBadCredentialsReclassifiesProbe(t *testing.T) {
	store := settings.NewMemStore()
	h := backend.New(store, "")
	h.SetDialer(func(dsn string) (*gorm.DB, error) {
		if strings.Contains(dsn, "bad.example.com") {
			return nil, errors.New("unreachable")
		}
		memDSN := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
		return gorm.Open(sqlite.Open(memDSN), &gorm.Config{})
	})
	p := probe.New(store, func() error {
		conn, err := h.DB()
		if err != nil {
			return err
		}
		return conn.Exec("SELECT 1").Error
	}, time.Minute)
	sh := NewSettingsHandler(store, h, p)

	w := httptest.NewRecorder()
	sh.Save(w, httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(`{"backend_url":"good.example.com","backend_key":"k"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if got := p.CheckNow(); got != probe.StatusConnected {
		t.Fatalf("expected connected, got %s", got)
	}

	// Replacement credentials that do not connect are still saved, but the
	// probe must classify them on their own merit. Before the handle dropped
	// the old connection on rebuild, this read went through the previous
	// backend and reported connected.
	w2 := httptest.NewRecorder()
	sh.Save(w2, httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(`{"backend_url":"bad.example.com","backend_key":"k"}`)))
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w2.Code)
	}
	if got := p.CheckNow(); got != probe.StatusDisconnected {
		t.Fatalf("expected disconnected for unreachable credentials, got %s", got)
	}
}

func TestSettingsClearDropsConnection(t *testing.T) {
	sh, store, _ := newSettingsFixture(t)
	if err := store.Save(settings.Credentials{URL: "db.example.com", Key: "k"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := sh.Handle.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	w := httptest.NewRecorder()
	sh.Clear(w, httptest.NewRequest(http.MethodDelete, "/config", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if _, err := sh.Handle.DB(); !errors.Is(err, backend.ErrNaoConfigurado) {
		t.Fatalf("cleared backend must refuse requests, got %v", err)
	}
}

func TestSettingsStatusReflectsProbe(t *testing.T) {
	sh, store, _ := newSettingsFixture(t)

	// Before any probe ran the status is checking.
	w := httptest.NewRecorder()
	sh.Status(w, httptest.NewRequest(http.MethodGet, "/config/status", nil))
	if !strings.Contains(w.Body.String(), "checking") {
		t.Fatalf("expected checking, got %s", w.Body.String())
	}

	// Without credentials a probe classifies as disconnected.
	sh.Prober.CheckNow()
	w2 := httptest.NewRecorder()
	sh.Status(w2, httptest.NewRequest(http.MethodGet, "/config/status", nil))
	if !strings.Contains(w2.Body.String(), "disconnected") {
		t.Fatalf("expected disconnected, got %s", w2.Body.String())
	}

	// With credentials and a healthy check it flips to connected.
	if err := store.Save(settings.Credentials{URL: "u", Key: "k"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	sh.Prober.CheckNow()
	w3 := httptest.NewRecorder()
	sh.Status(w3, httptest.NewRequest(http.MethodGet, "/config/status", nil))
	if !strings.Contains(w3.Body.String(), `"connected"`) {
		t.Fatalf("expected connected, got %s", w3.Body.String())
	}
}
