package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/models"
)

// VerifyServerSupportsAppName implements [Synchronizer]. GET /odktables/
// returns the JSON list of hosted application names; a 404 means the URL
// does not point at an ODK sync endpoint.
func (h *httpSynchronizer) VerifyServerSupportsAppName(ctx context.Context) error {
	req, err := h.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Get(h.appNamesPath())
	if err != nil {
		return transportError("verify app name", err)
	}
	if err = checkResponse(resp, http.StatusOK, http.StatusNotFound); err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: server does not implement the ODK 2.0 REST api", ErrBadClientConfig)
	}

	list := gjson.ParseBytes(resp.Body())
	if !list.IsArray() {
		return fmt.Errorf("%w: app name list is not an array", ErrMalformedResponse)
	}
	for _, name := range list.Array() {
		if name.String() == h.appName {
			return nil
		}
	}

	logger.FromContext(ctx).Warn().
		Str("func", "httpSynchronizer.VerifyServerSupportsAppName").
		Str("app_name", h.appName).
		Str("server_apps", list.Raw).
		Msg("app name is not hosted by server")
	return fmt.Errorf("%w: %s", ErrServerDoesNotRecognizeAppName, h.appName)
}

// GetUserRolesAndDefaultGroup implements [Synchronizer].
func (h *httpSynchronizer) GetUserRolesAndDefaultGroup(ctx context.Context) (*models.PrivilegesInfo, error) {
	req, err := h.request(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.Get(h.appPath() + "/privilegesInfo")
	if err != nil {
		return nil, transportError("get privileges", err)
	}
	if err = checkResponse(resp, http.StatusOK, http.StatusNotFound); err != nil {
		if h.anonymous && resp.StatusCode() == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	// older servers do not expose privileges
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}

	var info models.PrivilegesInfo
	if err = decode("get privileges", resp.Body(), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetTables implements [Synchronizer].
func (h *httpSynchronizer) GetTables(ctx context.Context, cursor string) (models.TableResourceList, error) {
	req, err := h.request(ctx)
	if err != nil {
		return models.TableResourceList{}, err
	}
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}

	resp, err := req.Get(h.tablesPath())
	if err != nil {
		return models.TableResourceList{}, transportError("get tables", err)
	}
	if err = checkResponse(resp, http.StatusOK); err != nil {
		return models.TableResourceList{}, err
	}

	var list models.TableResourceList
	if err = decode("get tables", resp.Body(), &list); err != nil {
		return models.TableResourceList{}, err
	}
	return list, nil
}

// GetTable implements [Synchronizer].
func (h *httpSynchronizer) GetTable(ctx context.Context, tableID string) (*models.TableResource, error) {
	req, err := h.request(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.Get(h.tablePath(tableID))
	if err != nil {
		return nil, transportError("get table", err)
	}
	if err = checkResponse(resp, http.StatusOK, http.StatusNotFound); err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}

	var table models.TableResource
	if err = decode("get table", resp.Body(), &table); err != nil {
		return nil, err
	}
	return &table, nil
}

// GetTableDefinition implements [Synchronizer].
func (h *httpSynchronizer) GetTableDefinition(ctx context.Context, definitionURI string) (models.TableDefinitionResource, error) {
	var def models.TableDefinitionResource
	if err := h.getJSON(ctx, "get table definition", definitionURI, &def); err != nil {
		return models.TableDefinitionResource{}, err
	}
	return def, nil
}

// CreateTable implements [Synchronizer]. The definition is PUT to the
// table's URI; the server answers with the created resource.
func (h *httpSynchronizer) CreateTable(ctx context.Context, tableID, schemaETag string, columns models.OrderedColumns) (models.TableResource, error) {
	req, err := h.request(ctx)
	if err != nil {
		return models.TableResource{}, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.TableDefinitionResource{TableID: tableID, SchemaETag: schemaETag, Columns: columns}).
		Put(h.tablePath(tableID))
	if err != nil {
		return models.TableResource{}, transportError("create table", err)
	}
	if err = checkResponse(resp, http.StatusOK); err != nil {
		return models.TableResource{}, err
	}

	var table models.TableResource
	if err = decode("create table", resp.Body(), &table); err != nil {
		return models.TableResource{}, err
	}
	return table, nil
}

// DeleteTable implements [Synchronizer].
func (h *httpSynchronizer) DeleteTable(ctx context.Context, table models.TableResource) error {
	req, err := h.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete(table.DefinitionURI)
	if err != nil {
		return transportError("delete table", err)
	}
	return checkResponse(resp, http.StatusOK)
}

// PublishTableSyncStatus implements [Synchronizer].
func (h *httpSynchronizer) PublishTableSyncStatus(ctx context.Context, table models.TableResource, status models.TableSyncStatus) error {
	req, err := h.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(status).
		Put(h.tablePath(table.TableID) + "/ref/" + escapePath(table.SchemaETag) + "/installationStatus")
	if err != nil {
		return transportError("publish table sync status", err)
	}
	return checkResponse(resp, http.StatusOK)
}
