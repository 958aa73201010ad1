package adapter

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-odk-sync/models"
)

// GetUpdates implements [Synchronizer]. Without a known epoch the full
// data resource is paged; otherwise the diff resource is asked for changes
// after sinceDataETag.
func (h *httpSynchronizer) GetUpdates(ctx context.Context, table models.TableResource, sinceDataETag, cursor string, fetchLimit int) (models.RowPage, error) {
	req, err := h.request(ctx)
	if err != nil {
		return models.RowPage{}, err
	}

	uri := table.DataURI
	if table.DataETag != "" && sinceDataETag != "" {
		uri = table.DiffURI
		req.SetQueryParam("data_etag", sinceDataETag)
	}
	req.SetQueryParam("fetchLimit", strconv.Itoa(fetchLimit))
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}

	resp, err := req.Get(uri)
	if err != nil {
		return models.RowPage{}, transportError("get updates", err)
	}
	if err = checkResponse(resp, http.StatusOK); err != nil {
		return models.RowPage{}, err
	}

	var page models.RowPage
	if err = decode("get updates", resp.Body(), &page); err != nil {
		return models.RowPage{}, err
	}
	return page, nil
}

// PushLocalRows implements [Synchronizer]. A 409 means the server's data
// epoch is no longer table.DataETag.
func (h *httpSynchronizer) PushLocalRows(ctx context.Context, table models.TableResource, columns models.OrderedColumns, rows []models.Row) (*models.RowOutcomeList, error) {
	req, err := h.request(ctx)
	if err != nil {
		return nil, err
	}

	body := models.RowList{Rows: make([]models.ServerRow, 0, len(rows)), DataETag: table.DataETag}
	for _, r := range rows {
		body.Rows = append(body.Rows, r.ToServerRow(columns))
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put(table.DataURI)
	if err != nil {
		return nil, transportError("push local rows", err)
	}
	if err = checkResponse(resp, http.StatusOK, http.StatusConflict); err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusConflict {
		return nil, nil
	}

	var outcomes models.RowOutcomeList
	if err = decode("push local rows", resp.Body(), &outcomes); err != nil {
		return nil, err
	}
	return &outcomes, nil
}
