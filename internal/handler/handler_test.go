package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/mkotov/card-wallet/internal/barcode"
	"github.com/mkotov/card-wallet/internal/models"
	"github.com/mkotov/card-wallet/internal/storage"
	"github.com/mkotov/card-wallet/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	slot, err := storage.NewFileSlot(t.TempDir(), "cards")
	require.NoError(t, err)
	log := logrus.New()
	log.SetOutput(io.Discard)

	h := NewHandler(store.New(slot, log, nil), barcode.TextRenderer{}, log)
	r := mux.NewRouter()
	h.Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeCard(t *testing.T, resp *http.Response) models.Card {
	t.Helper()
	defer resp.Body.Close()
	var card models.Card
	require.NoError(t, jsonDecode(resp.Body, &card))
	return card
}

func jsonDecode(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}

func TestCreateAndListCards(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/cards", `{"storeName":"IKEA","cardNumber":"1234567890128"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	card := decodeCard(t, resp)
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, barcode.EAN13, card.BarcodeFormat)

	resp, err := http.Get(srv.URL + "/cards")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cards []models.Card
	require.NoError(t, jsonDecode(resp.Body, &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, card.ID, cards[0].ID)
}

func TestCreateCardMissingFields(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/cards", `{"storeName":"IKEA"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetCardNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/cards/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestToggleFavoriteEndpoint(t *testing.T) {
	srv := newTestServer(t)
	card := decodeCard(t, doJSON(t, http.MethodPost, srv.URL+"/cards", `{"storeName":"Shop","cardNumber":"123"}`))

	resp := doJSON(t, http.MethodPost, srv.URL+"/cards/"+card.ID+"/favorite", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state map[string]bool
	require.NoError(t, jsonDecode(resp.Body, &state))
	assert.True(t, state["isFavorite"])
}

func TestMarkUsedEndpointNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/cards/nope/used", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRenderBarcodeTextFallback(t *testing.T) {
	srv := newTestServer(t)
	card := decodeCard(t, doJSON(t, http.MethodPost, srv.URL+"/cards", `{"storeName":"Shop","cardNumber":"12345678"}`))

	resp, err := http.Get(srv.URL + "/cards/" + card.ID + "/barcode")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "12345678")
}

func TestImportInvalidDocument(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/import", `{"not":"an array"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImportAndExportEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/import",
		`[{"storeName":"Shop","cardNumber":"12345678","barcodeFormat":"EAN8","isFavorite":true}]`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result map[string]int
	require.NoError(t, jsonDecode(resp.Body, &result))
	assert.Equal(t, 1, result["imported"])

	exportResp, err := http.Get(srv.URL + "/export")
	require.NoError(t, err)
	defer exportResp.Body.Close()
	require.Equal(t, http.StatusOK, exportResp.StatusCode)
	var records []models.ExportRecord
	require.NoError(t, jsonDecode(exportResp.Body, &records))
	require.Len(t, records, 1)
	assert.True(t, records[0].IsFavorite)
}

func TestWipeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/cards", `{"storeName":"Shop","cardNumber":"123"}`).Body.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/cards", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	listResp, err := http.Get(srv.URL + "/cards")
	require.NoError(t, err)
	defer listResp.Body.Close()
	var cards []models.Card
	require.NoError(t, jsonDecode(listResp.Body, &cards))
	assert.Empty(t, cards)
}

func TestListFormats(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/formats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var formats []barcode.FormatInfo
	require.NoError(t, jsonDecode(resp.Body, &formats))
	require.Len(t, formats, 6)
	assert.Equal(t, barcode.Code128, formats[0].Tag)
	assert.True(t, formats[0].IsDefault)
}
