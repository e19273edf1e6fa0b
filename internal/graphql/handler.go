package graphql

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

const (
	// DefaultMaxRequestBytes bounds a whole request body, file parts included.
	DefaultMaxRequestBytes int64 = 10 << 20
	maxUploadMemory        int64 = 8 << 20
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes GraphQL requests sent as JSON bodies or as multipart forms
// carrying an "operations" document, a "map" of file parts and the files.
type Handler struct {
	log      *zap.Logger
	schema   graphql.Schema
	maxBytes int64
}

func NewHandler(log *zap.Logger, schema graphql.Schema, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBytes
	}
	return &Handler{
		log:      log,
		schema:   schema,
		maxBytes: maxBytes,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST is supported")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	req, err := h.parseRequest(r)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.log.Info("graphql request too large", zap.Int64("limit", tooLarge.Limit))
		h.writeError(w, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "request body too large")
		return
	}
	if err != nil {
		h.log.Debug("bad graphql request", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.log.Error("could not write graphql response", zap.Error(err))
	}
}

func (h *Handler) parseRequest(r *http.Request) (*request, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("invalid content type: %w", err)
	}

	switch mediaType {
	case "application/json":
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("invalid json body: %w", err)
		}
		return &req, nil
	case "multipart/form-data":
		return parseMultipart(r, min(maxUploadMemory, h.maxBytes))
	default:
		return nil, fmt.Errorf("unsupported content type %q", mediaType)
	}
}

func parseMultipart(r *http.Request, maxMemory int64) (*request, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, fmt.Errorf("invalid multipart body: %w", err)
	}

	var req request
	if err := json.Unmarshal([]byte(r.FormValue("operations")), &req); err != nil {
		return nil, fmt.Errorf("invalid operations field: %w", err)
	}
	if req.Variables == nil {
		req.Variables = map[string]interface{}{}
	}

	var files map[string][]string
	if raw := r.FormValue("map"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &files); err != nil {
			return nil, fmt.Errorf("invalid map field: %w", err)
		}
	}

	for part, paths := range files {
		headers := r.MultipartForm.File[part]
		if len(headers) == 0 {
			return nil, fmt.Errorf("missing file part %q", part)
		}
		file := NewFile(headers[0])
		for _, path := range paths {
			if err := setVariable(req.Variables, path, file); err != nil {
				return nil, err
			}
		}
	}

	return &req, nil
}

// setVariable writes value at a dotted path such as "variables.input.file".
func setVariable(variables map[string]interface{}, path string, value interface{}) error {
	keys := strings.Split(path, ".")
	if len(keys) < 2 || keys[0] != "variables" {
		return fmt.Errorf("unsupported file path %q", path)
	}

	current := variables
	for _, key := range keys[1 : len(keys)-1] {
		next, ok := current[key].(map[string]interface{})
		if !ok {
			return fmt.Errorf("file path %q does not address an object", path)
		}
		current = next
	}

	last := keys[len(keys)-1]
	if last == "" {
		return errors.New("empty file path segment")
	}
	current[last] = value
	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": []map[string]interface{}{
			{
				"message":    message,
				"extensions": map[string]string{"code": code},
			},
		},
	})
}
