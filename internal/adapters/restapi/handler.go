package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"evm_tx_encoder/internal/logger"
	"evm_tx_encoder/pkg/txencoder"
)

// errBodyTooLarge marks request bodies rejected by http.MaxBytesReader.
var errBodyTooLarge = errors.New("request body too large")

// HTTPHandler handles incoming HTTP requests for the encoder API.
type HTTPHandler struct {
	encoderService txencoder.Encoder
	logger         logger.AppLogger
	maxBodyBytes   int64
}

// NewHTTPHandler creates a new handler with the necessary service dependency.
func NewHTTPHandler(encoderService txencoder.Encoder, appLogger logger.AppLogger, maxBodyBytes int64) (*HTTPHandler, error) {
	if encoderService == nil {
		return nil, errors.New("encoderService cannot be nil for HTTPHandler")
	}
	if appLogger == nil {
		return nil, errors.New("logger cannot be nil for HTTPHandler")
	}
	if maxBodyBytes <= 0 {
		return nil, errors.New("maxBodyBytes must be positive for HTTPHandler")
	}
	return &HTTPHandler{
		encoderService: encoderService,
		logger:         appLogger,
		maxBodyBytes:   maxBodyBytes,
	}, nil
}

// HandleHealth handles requests to GET /health
func (h *HTTPHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.logger.With("method", r.Method, "path", r.URL.Path)

	if r.Method != http.MethodGet {
		requestLogger.Warn("Method not allowed for Health")
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", requestLogger)
		return
	}

	respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"}, requestLogger)
}

// HandleEncodeUnsigned handles requests to POST /encode/unsigned
func (h *HTTPHandler) HandleEncodeUnsigned(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.logger.With("method", r.Method, "path", r.URL.Path)

	var req txencoder.TransactionRequest
	if !h.decodePost(w, r, &req, requestLogger) {
		return
	}

	resp, err := h.encoderService.EncodeUnsigned(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to encode transaction", requestLogger)
		return
	}

	requestLogger.Info("Encoded unsigned transaction", "payload_hex_len", len(resp.Payload))
	respondWithJSON(w, http.StatusOK, resp, requestLogger)
}

// HandleEncodeSigned handles requests to POST /encode/signed
func (h *HTTPHandler) HandleEncodeSigned(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.logger.With("method", r.Method, "path", r.URL.Path)

	var req EncodeSignedRequest
	if !h.decodePost(w, r, &req, requestLogger) {
		return
	}

	resp, err := h.encoderService.EncodeSigned(r.Context(), req.Transaction, req.Signature)
	if err != nil {
		respondWithServiceError(w, err, "Failed to encode transaction", requestLogger)
		return
	}

	requestLogger.Info("Encoded signed transaction", "hash", resp.Hash)
	respondWithJSON(w, http.StatusOK, resp, requestLogger)
}

// HandleImport handles requests to POST /import
func (h *HTTPHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.logger.With("method", r.Method, "path", r.URL.Path)

	var req ImportRequest
	if !h.decodePost(w, r, &req, requestLogger) {
		return
	}
	if len(req.Fields) == 0 {
		respondWithError(w, http.StatusBadRequest, "Fields cannot be empty", requestLogger)
		return
	}

	resp, err := h.encoderService.Import(r.Context(), req.Fields, req.Signature)
	if err != nil {
		respondWithServiceError(w, err, "Failed to import transaction", requestLogger)
		return
	}

	if resp.AccessListIgnored {
		requestLogger.Warn("Imported transaction without its access list")
	}
	requestLogger.Info("Imported transaction", "signed", resp.Signed)
	respondWithJSON(w, http.StatusOK, resp, requestLogger)
}

// HandleDecode handles requests to POST /decode
func (h *HTTPHandler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.logger.With("method", r.Method, "path", r.URL.Path)

	var req DecodeRequest
	if !h.decodePost(w, r, &req, requestLogger) {
		return
	}
	if req.Payload == "" {
		respondWithError(w, http.StatusBadRequest, "Payload cannot be empty", requestLogger)
		return
	}

	resp, err := h.encoderService.Decode(r.Context(), req.Payload)
	if err != nil {
		respondWithServiceError(w, err, "Failed to decode payload", requestLogger)
		return
	}

	requestLogger.Info("Decoded payload", "signed", resp.Signature != nil)
	respondWithJSON(w, http.StatusOK, resp, requestLogger)
}

// decodePost checks the method and decodes a size-limited JSON body into dst.
// It writes the error response itself and reports whether the handler should continue.
func (h *HTTPHandler) decodePost(w http.ResponseWriter, r *http.Request, dst any, l logger.AppLogger) bool {
	if r.Method != http.MethodPost {
		l.Warn("Method not allowed")
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", l)
		return false
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			l.Warn("Failed to close request body", "error", err)
		}
	}()

	if err := decodeJSONBody(w, r, h.maxBodyBytes, dst); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, err.Error(), l)
			return false
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), l)
		return false
	}
	return true
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, maxBytesErr.Limit)
		}
		return err
	}
	if dec.More() {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// respondWithServiceError maps service errors to 400 for caller mistakes and 500 otherwise.
func respondWithServiceError(w http.ResponseWriter, err error, internalMessage string, l logger.AppLogger) {
	if errors.Is(err, txencoder.ErrInvalidRequest) {
		l.Warn("Request validation failed", "error", err)
		respondWithError(w, http.StatusBadRequest, err.Error(), l)
		return
	}
	l.Error(internalMessage, "error", err)
	respondWithError(w, http.StatusInternalServerError, internalMessage, l)
}

// respondWithError logs a warning and sends a JSON error response with the given code and message.
func respondWithError(w http.ResponseWriter, code int, message string, l logger.AppLogger) {
	if l == nil {
		l = logger.NewSlogAdapter(slog.Default())
	}
	l.Warn("Responding with error", "http_code", code, "message", message)
	respondWithJSON(w, code, ErrorResponse{Error: message}, l)
}

// respondWithJSON marshals the given payload into JSON and writes it to the response writer.
func respondWithJSON(w http.ResponseWriter, code int, payload any, l logger.AppLogger) {
	if l == nil {
		l = logger.NewSlogAdapter(slog.Default())
	}

	response, err := json.Marshal(payload)
	if err != nil {
		l.Error("!!! Critical: Error marshaling JSON response !!!",
			"error", err.Error(),
			"payload_type", fmt.Sprintf("%T", payload),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	n, writeErr := w.Write(response)
	if writeErr != nil {
		l.Error("Error writing response body", "error", writeErr, "bytes_written", n)
	}
}
