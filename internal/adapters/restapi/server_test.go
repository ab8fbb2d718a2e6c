package restapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evm_tx_encoder/internal/adapters/restapi"
	"evm_tx_encoder/internal/adapters/restapi/mocks/mock_encoder"
	"evm_tx_encoder/internal/config"
	"evm_tx_encoder/internal/core/application"
	applogger "evm_tx_encoder/internal/logger"
	"evm_tx_encoder/pkg/txencoder"
)

func setupServer(t *testing.T, encoderCfg config.EncoderConfig) *restapi.Server {
	t.Helper()
	appLogger := applogger.NewNopLogger()

	service, err := application.NewEncoderService(appLogger, encoderCfg)
	require.NoError(t, err)

	server, err := restapi.NewServer(service, appLogger, &config.Default().Server)
	require.NoError(t, err)
	return server
}

func TestNewServer_NilDependencies(t *testing.T) {
	cfg := &config.Default().Server

	_, err := restapi.NewServer(nil, applogger.NewNopLogger(), cfg)
	assert.Error(t, err)

	_, err = restapi.NewServer(new(mock_encoder.MockEncoder), nil, cfg)
	assert.Error(t, err)

	_, err = restapi.NewServer(new(mock_encoder.MockEncoder), applogger.NewNopLogger(), nil)
	assert.Error(t, err)
}

func TestServer_EndToEnd(t *testing.T) {
	ts := httptest.NewServer(setupServer(t, config.EncoderConfig{}).Handler())
	defer ts.Close()

	post := func(path, body string) (*http.Response, []byte) {
		t.Helper()
		resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		var raw json.RawMessage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
		return resp, raw
	}

	resp, raw := post("/encode/signed", `{
		"transaction": {"chainId":"1","nonce":"0","gasLimit":"21000","maxFeePerGas":"1"},
		"signature": {"v":"1","r":"0xaa","s":"0xbb"}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var encoded txencoder.EncodeResponse
	require.NoError(t, json.Unmarshal(raw, &encoded))
	assert.Equal(t, "0x02d001808001825208808080c00181aa81bb", encoded.Payload)

	resp, raw = post("/decode", `{"payload":"`+encoded.Payload+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded txencoder.DecodeResponse
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "21000", decoded.Transaction.GasLimit)
	assert.Equal(t, encoded.Hash, decoded.Hash)

	resp, raw = post("/import", `{"fields":{"nonce":"0","value":"0","gasLimit":"21000",
		"maxPriorityFeePerGas":"0","maxFeePerGas":"1","chainId":"1","accessList":[{"address":"0x00"}]}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var imported txencoder.EncodeResponse
	require.NoError(t, json.Unmarshal(raw, &imported))
	assert.Equal(t, "0x02cb01808001825208808080c0", imported.Payload)
	assert.True(t, imported.AccessListIgnored)

	resp, _ = post("/encode/unsigned", `{"chainId":"1","nonce":"0","gasLimit":"21000"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_RejectsAccessListImportsWhenConfigured(t *testing.T) {
	handler := setupServer(t, config.EncoderConfig{RejectAccessListImports: true}).Handler()

	body := `{"fields":{"nonce":"0","value":"0","gasLimit":"21000",
		"maxPriorityFeePerGas":"0","maxFeePerGas":"1","chainId":"1","accessList":[{}]}}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), application.ErrAccessListRejected.Error())
}

func TestServer_Routes(t *testing.T) {
	handler := setupServer(t, config.EncoderConfig{}).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/decode", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/0x00", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
