package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-odk-sync/internal/config"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/utils"
)

// ODK protocol headers.
const (
	HeaderVersion        = "X-OpenDataKit-Version"
	HeaderInstallationID = "X-OpenDataKit-Installation-Id"
	ProtocolVersion      = "2.0"
)

const acceptJSON = "application/json; q=1.0, text/plain; charset=utf-8; q=0.4"

type httpSynchronizer struct {
	client  *utils.HTTPClient
	baseURL string

	appName       string
	clientVersion string
	token         string
	anonymous     bool

	tempNames *utils.UUIDGenerator
	logger    *logger.Logger
}

// NewHTTPSynchronizer constructs the REST implementation of [Synchronizer]
// for the server and application named in the configuration. userAgent is
// sent with every request.
func NewHTTPSynchronizer(adapterCfg config.ClientAdapter, appCfg config.ClientApp, userAgent string, log *logger.Logger) (Synchronizer, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid server url: %w", ErrBadClientConfig, err)
	}

	client := utils.NewHTTPClient(utils.HTTPClientOptions{
		BaseURL:    baseURL,
		Timeout:    adapterCfg.RequestTimeout,
		RetryCount: adapterCfg.RetryCount,
		UserAgent:  userAgent,
		Username:   adapterCfg.Username,
		Password:   adapterCfg.Password,
		Token:      adapterCfg.Token,
	})
	client.SetHeaders(map[string]string{
		HeaderVersion:        ProtocolVersion,
		HeaderInstallationID: appCfg.InstallationID,
		"Accept":             acceptJSON,
		"Accept-Charset":     "utf-8",
	})

	return &httpSynchronizer{
		client:        client,
		baseURL:       baseURL,
		appName:       appCfg.AppName,
		clientVersion: appCfg.ClientVersion,
		token:         strings.TrimSpace(adapterCfg.Token),
		anonymous:     adapterCfg.Token == "" && adapterCfg.Username == "",
		tempNames:     utils.NewUUIDGenerator(),
		logger:        log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// request starts a request carrying the per-request Date header. An expired
// bearer token is refused before anything is sent.
func (h *httpSynchronizer) request(ctx context.Context) (*resty.Request, error) {
	if h.token != "" {
		expired, err := utils.TokenExpired(h.token, time.Now())
		if err == nil && expired {
			return nil, fmt.Errorf("%w: bearer token expired", ErrAccessDeniedReauth)
		}
	}

	return h.client.R().
		SetContext(ctx).
		SetHeader("Date", time.Now().UTC().Format(http.TimeFormat)), nil
}

// getJSON issues a GET and decodes a 200 answer into out.
func (h *httpSynchronizer) getJSON(ctx context.Context, op, uri string, out any) error {
	req, err := h.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Get(uri)
	if err != nil {
		return transportError(op, err)
	}
	if err = checkResponse(resp, http.StatusOK); err != nil {
		return err
	}
	return decode(op, resp.Body(), out)
}

func decode(op string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedResponse, op, err)
	}
	return nil
}

// Server paths, relative to the base URL.

func (h *httpSynchronizer) appNamesPath() string {
	return "/odktables/"
}

func (h *httpSynchronizer) appPath() string {
	return "/odktables/" + url.PathEscape(h.appName)
}

func (h *httpSynchronizer) tablesPath() string {
	return h.appPath() + "/tables/"
}

func (h *httpSynchronizer) tablePath(tableID string) string {
	return h.tablesPath() + url.PathEscape(tableID)
}

func (h *httpSynchronizer) manifestPath() string {
	return h.appPath() + "/manifest/" + url.PathEscape(h.clientVersion) + "/"
}

func (h *httpSynchronizer) configFilePath(configRelativePath string) string {
	return h.appPath() + "/files/" + url.PathEscape(h.clientVersion) + "/" + escapePath(configRelativePath)
}

// escapePath escapes each segment of a slash separated path.
func escapePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// instancePath builds {instanceFilesURI}/{rowID}/{suffix}.
func instancePath(instanceFilesURI, rowID, suffix string) string {
	return strings.TrimRight(instanceFilesURI, "/") + "/" + url.PathEscape(rowID) + "/" + suffix
}

func (h *httpSynchronizer) ManifestURI(tableID string) string {
	if tableID == "" {
		return h.baseURL + h.manifestPath()
	}
	return h.baseURL + h.manifestPath() + escapePath(tableID)
}

func (h *httpSynchronizer) InstanceFilesURI(tableID, schemaETag string) string {
	return h.baseURL + h.tablePath(tableID) + "/ref/" + url.PathEscape(schemaETag) + "/attachments"
}

func (h *httpSynchronizer) RowManifestURI(instanceFilesURI, rowID string) string {
	return instancePath(instanceFilesURI, rowID, "manifest")
}
