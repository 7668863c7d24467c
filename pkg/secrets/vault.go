// Package secrets hydrates process environment variables from a Vault
// KV store before configuration is loaded. Disabled unless
// VAULT_ENABLED=true, so local development needs nothing but a .env.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Result summarises a hydration pass.
type Result struct {
	Enabled bool
	Loaded  int
	Skipped int
}

// Hydrate fetches the configured KV v2 path and exports each key as an
// environment variable. Existing variables win unless VAULT_OVERWRITE
// is set; secrets never silently clobber explicit configuration.
func Hydrate(ctx context.Context) (Result, error) {
	if !strings.EqualFold(os.Getenv("VAULT_ENABLED"), "true") {
		return Result{}, nil
	}

	addr := strings.TrimRight(os.Getenv("VAULT_ADDR"), "/")
	token := os.Getenv("VAULT_TOKEN")
	mount := os.Getenv("VAULT_MOUNT")
	if mount == "" {
		mount = "secret"
	}
	path := os.Getenv("VAULT_PATH")
	if path == "" {
		path = "hms-gateway"
	}
	if addr == "" || token == "" {
		return Result{Enabled: true}, errors.New("vault configuration incomplete (VAULT_ADDR, VAULT_TOKEN)")
	}

	url := fmt.Sprintf("%s/v1/%s/data/%s", addr, strings.Trim(mount, "/"), strings.TrimLeft(path, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Enabled: true}, err
	}
	req.Header.Set("X-Vault-Token", token)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Enabled: true}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Enabled: true}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Enabled: true}, fmt.Errorf("vault fetch failed: %s %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Data struct {
			Data map[string]any `json:"data"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Result{Enabled: true}, err
	}
	if payload.Data.Data == nil {
		return Result{Enabled: true}, errors.New("vault response missing KV v2 data")
	}

	overwrite := strings.EqualFold(os.Getenv("VAULT_OVERWRITE"), "true")
	res := Result{Enabled: true}
	for key, value := range payload.Data.Data {
		if !overwrite && os.Getenv(key) != "" {
			res.Skipped++
			continue
		}
		if err := os.Setenv(key, stringify(value)); err != nil {
			return res, err
		}
		res.Loaded++
	}
	return res, nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
