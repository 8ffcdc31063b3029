package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/vault/api"

	"internhunt/internal/errors"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	return logger
}

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name        string
		input       any
		expected    int64
		expectError bool
	}{
		{name: "int64 value", input: int64(42), expected: 42},
		{name: "float64 value", input: float64(42.0), expected: 42},
		{name: "string value", input: "42", expected: 42},
		{name: "invalid string value", input: "not-a-number", expectError: true},
		{name: "unsupported type", input: []string{"42"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseVersionValue(tt.input, "test/path")
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("got %d, want %d", result, tt.expected)
			}
		})
	}
}

func TestResolveVaultToken(t *testing.T) {
	logger := testLogger(t)

	t.Run("token from config", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "direct-token"}, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "direct-token" {
			t.Errorf("got %q, want %q", token, "direct-token")
		}
	})

	t.Run("token from file is trimmed", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "vault-token")
		if err := os.WriteFile(tokenFile, []byte("  file-token  \n"), 0o600); err != nil {
			t.Fatal(err)
		}

		token, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile}, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "file-token" {
			t.Errorf("got %q, want %q", token, "file-token")
		}
	})

	t.Run("missing token file", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: "/nonexistent/token/file"}, logger)
		if err == nil {
			t.Fatal("expected error for missing token file")
		}
	})

	t.Run("no token provided", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{}, logger)
		if err == nil {
			t.Fatal("expected error when no token is configured")
		}
	})

	t.Run("whitespace-only token file", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "empty-token")
		if err := os.WriteFile(tokenFile, []byte("   \n  \n"), 0o600); err != nil {
			t.Fatal(err)
		}

		_, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile}, logger)
		if err == nil {
			t.Fatal("expected error for empty token file")
		}
	})
}

func TestLoadSingleCertificate(t *testing.T) {
	tests := []struct {
		name        string
		data        map[string]any
		key         string
		expected    int
		expectValue string
	}{
		{
			name:        "valid certificate content",
			data:        map[string]any{"cert": "-----BEGIN CERTIFICATE-----\ntest\n-----END CERTIFICATE-----"},
			key:         "cert",
			expected:    1,
			expectValue: "-----BEGIN CERTIFICATE-----\ntest\n-----END CERTIFICATE-----",
		},
		{
			name:     "empty certificate content",
			data:     map[string]any{"cert": ""},
			key:      "cert",
			expected: 0,
		},
		{
			name:     "missing certificate key",
			data:     map[string]any{"other": "value"},
			key:      "cert",
			expected: 0,
		},
		{
			name:     "non-string certificate value",
			data:     map[string]any{"cert": 123},
			key:      "cert",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target string
			result := loadSingleCertificate(&VaultSecret{Data: tt.data}, tt.key, &target)
			if result != tt.expected {
				t.Errorf("got count %d, want %d", result, tt.expected)
			}
			if target != tt.expectValue {
				t.Errorf("got target %q, want %q", target, tt.expectValue)
			}
		})
	}
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	config := &Config{Vault: VaultConfig{Enabled: false}}
	if err := ApplyVaultSecrets(config, testLogger(t)); err != nil {
		t.Fatalf("disabled vault should not error: %v", err)
	}
}

func TestVaultClientExtractSecretData(t *testing.T) {
	vc := &VaultClient{logger: testLogger(t)}

	tests := []struct {
		name        string
		secret      *api.Secret
		expectError bool
		expectKey   string
		expectValue string
	}{
		{
			name: "valid KVv2 secret",
			secret: &api.Secret{
				Data: map[string]any{
					"data": map[string]any{"key1": "value1"},
				},
			},
			expectKey:   "key1",
			expectValue: "value1",
		},
		{
			name: "missing data field",
			secret: &api.Secret{
				Data: map[string]any{"metadata": map[string]any{}},
			},
			expectError: true,
		},
		{
			name: "data field wrong type",
			secret: &api.Secret{
				Data: map[string]any{"data": "not-a-map"},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := vc.extractSecretData(tt.secret, "secret/test")
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result[tt.expectKey] != tt.expectValue {
				t.Errorf("got %v for key %s, want %s", result[tt.expectKey], tt.expectKey, tt.expectValue)
			}
		})
	}
}

func TestVaultClientExtractSecretVersion(t *testing.T) {
	vc := &VaultClient{logger: testLogger(t)}

	tests := []struct {
		name        string
		secret      *api.Secret
		expected    int64
		expectError bool
	}{
		{
			name: "version as int64",
			secret: &api.Secret{
				Data: map[string]any{
					"metadata": map[string]any{"version": int64(42)},
				},
			},
			expected: 42,
		},
		{
			name: "version as float64",
			secret: &api.Secret{
				Data: map[string]any{
					"metadata": map[string]any{"version": float64(42)},
				},
			},
			expected: 42,
		},
		{
			name: "missing metadata field",
			secret: &api.Secret{
				Data: map[string]any{"data": map[string]any{}},
			},
			expectError: true,
		},
		{
			name: "missing version field",
			secret: &api.Secret{
				Data: map[string]any{
					"metadata": map[string]any{"other": "value"},
				},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := vc.extractSecretVersion(tt.secret, "secret/test")
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("got %d, want %d", result, tt.expected)
			}
		})
	}
}
