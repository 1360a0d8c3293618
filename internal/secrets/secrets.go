// Package secrets overlays credentials stored in a HashiCorp Vault KV v2
// engine onto the configuration read from the environment.
package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/novafunded/internal/config"
	"github.com/hashicorp/vault/api"
	"go.uber.org/zap"
)

const (
	keyTronAPIKey = "tron_api_key"
	keyJWTSecret  = "jwt_secret"
)

var ErrSecretNotFound = errors.New("secret not found")

// Load is a no-op when no Vault address is configured. Values present in the
// secret replace the ones taken from the environment.
func Load(ctx context.Context, cfg *config.Config) error {
	if cfg.VaultAddress == "" {
		return nil
	}

	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = cfg.VaultAddress
	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return fmt.Errorf("failed to create vault client: %w", err)
	}
	client.SetToken(cfg.VaultToken)

	secret, err := client.Logical().ReadWithContext(ctx, cfg.VaultSecretPath)
	if err != nil {
		return fmt.Errorf("failed to read %s from vault: %w", cfg.VaultSecretPath, err)
	}
	if secret == nil || secret.Data == nil {
		return fmt.Errorf("%w: %s", ErrSecretNotFound, cfg.VaultSecretPath)
	}
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("invalid secret format at %s", cfg.VaultSecretPath)
	}

	if v := getString(data, keyTronAPIKey); v != "" {
		cfg.TronAPIKey = v
	}
	if v := getString(data, keyJWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	zap.L().Info("secrets loaded from vault", zap.String("path", cfg.VaultSecretPath))
	return nil
}

func getString(data map[string]interface{}, key string) string {
	v, _ := data[key].(string)
	return v
}
