package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-odk-sync/internal/filecache"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/store"
)

const (
	metaInstallationID = "installation_id"
	metaServerURL      = "server_url"
)

// IDGenerator returns new unique identifiers.
type IDGenerator interface {
	Generate() string
}

// InstallationID returns the configured id when set. Otherwise it returns
// the id remembered in meta, generating and storing one on first use.
func InstallationID(meta MetaStore, configured string, gen IDGenerator) (string, error) {
	if id := strings.TrimSpace(configured); id != "" {
		return id, nil
	}

	id, err := meta.Meta(metaInstallationID)
	if err == nil && id != "" {
		return id, nil
	}
	if err != nil && !errors.Is(err, filecache.ErrNotFound) {
		return "", fmt.Errorf("reading installation id: %w", err)
	}

	id = gen.Generate()
	if err = meta.SetMeta(metaInstallationID, id); err != nil {
		return "", fmt.Errorf("storing installation id: %w", err)
	}
	return id, nil
}

// ForgetServerOnChange drops every cached sync ETag when serverURL differs
// from the server the client last synced with, so that manifests and files
// are compared in full against the new server.
func ForgetServerOnChange(ctx context.Context, meta MetaStore, db store.DatabaseService, serverURL string) error {
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")

	previous, err := meta.Meta(metaServerURL)
	if err != nil && !errors.Is(err, filecache.ErrNotFound) {
		return fmt.Errorf("reading last server url: %w", err)
	}
	if previous == serverURL {
		return nil
	}

	if previous != "" {
		logger.FromContext(ctx).Info().
			Str("func", "ForgetServerOnChange").
			Str("previous", previous).
			Str("current", serverURL).
			Msg("server changed, dropping cached sync etags")
		if err = db.DeleteAllSyncETags(ctx); err != nil {
			return fmt.Errorf("dropping sync etags: %w", err)
		}
	}

	if err = meta.SetMeta(metaServerURL, serverURL); err != nil {
		return fmt.Errorf("storing server url: %w", err)
	}
	return nil
}
