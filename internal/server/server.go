// Package server exposes the rent-vs-buy calculator over an HTTP JSON API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/rent-vs-buy/internal/calculator"
	"github.com/iwvelando/rent-vs-buy/internal/config"
	"github.com/iwvelando/rent-vs-buy/internal/optimizer"
	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
// A nil limiter disables rate limiting.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, limiter *RateLimiter) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Calculation endpoint (file upload)
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Calculation endpoint for editor-driven updates
	mux.HandleFunc("/api/editor/calculate", h.handleCalculateEditor)

	// Config serialization endpoint for editor downloads
	mux.HandleFunc("/api/editor/export", h.handleConfigExport)

	// Default scenario for seeding a new editor session
	mux.HandleFunc("/api/defaults", h.handleDefaults)

	mux.HandleFunc("/api/version", h.handleVersion)

	var root http.Handler = mux
	if limiter != nil {
		root = limiter.Middleware(logger, root)
	}
	return RequestID(root)
}

type calculateOptions struct {
	Breakeven bool
}

type calculateResponse struct {
	Scenarios  []string               `json:"scenarios"`
	Reports    []calculator.Report    `json:"reports"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleCalculate")
			return
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleCalculate")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "missing configuration file", "server.handleCalculate")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleCalculate"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleCalculate")
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), "server.handleCalculate")
		return
	}

	options := calculateOptions{Breakeven: coerceBool(r.FormValue("breakeven"))}
	h.runCalculation(w, r, configBytes, configMap, start, "server.handleCalculate", options)
}

func (h *handler) handleCalculateEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleCalculateEditor")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	options := calculateOptions{}
	if rawOptions, ok := payload["options"]; ok {
		optsMap, ok := rawOptions.(map[string]interface{})
		if !ok {
			h.respondError(w, r, http.StatusBadRequest, "invalid options payload: expected object", "server.handleCalculateEditor")
			return
		}
		if breakevenVal, ok := optsMap["breakeven"]; ok {
			options.Breakeven = coerceBool(breakevenVal)
		}
	}

	var configPayload map[string]interface{}
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, r, http.StatusBadRequest, "invalid config payload: expected object", "server.handleCalculateEditor")
			return
		}
		configPayload = cfgMap
	} else {
		configPayload = make(map[string]interface{}, len(payload))
		for key, value := range payload {
			if key == "options" {
				continue
			}
			configPayload[key] = value
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleCalculateEditor")
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), "server.handleCalculateEditor")
		return
	}

	h.runCalculation(w, r, configBytes, configMap, start, "server.handleCalculateEditor", options)
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleConfigExport")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenario": defaultScenarioPayload(),
		"report":   calculator.FromScenario(h.logger, config.DefaultScenario()).Report(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// defaultScenarioPayload renders the default scenario with the same keys a
// configuration file uses.
func defaultScenarioPayload() map[string]interface{} {
	data, err := yaml.Marshal(config.DefaultScenario())
	if err != nil {
		return map[string]interface{}{}
	}
	m, err := decodeYAMLToMap(data)
	if err != nil {
		return map[string]interface{}{}
	}
	return m
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "scenarios"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) runCalculation(w http.ResponseWriter, r *http.Request, configBytes []byte, configMap map[string]interface{}, start time.Time, op string, opts calculateOptions) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	reports, err := calculator.Calculate(h.logger, *cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calculator.ErrNoActiveScenarios) {
			status = http.StatusBadRequest
		}
		h.respondError(w, r, status, fmt.Sprintf("failed to calculate: %v", err), op)
		return
	}

	if opts.Breakeven {
		runner, err := optimizer.NewRunner(h.logger, cfg)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to initialize breakeven search: %v", err), op)
			return
		}
		result, err := runner.Run()
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("breakeven search failed: %v", err), op)
			return
		}
		result.Apply(reports)
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := calculateResponse{
		Scenarios:  scenarioNames(reports),
		Reports:    reports,
		CSV:        output.CsvString(reports),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}

	// Reports with non-finite values cannot be encoded as JSON.
	body, err := json.Marshal(response)
	if err != nil {
		h.respondError(w, r, http.StatusUnprocessableEntity,
			"results contain non-finite values; check the home value, term, and rates", op)
		return
	}

	h.logger.Info("calculation completed",
		zap.String("op", op),
		zap.String("requestID", r.Header.Get(RequestIDHeader)),
		zap.Int("scenarios", len(reports)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", op), zap.Error(err))
	}
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.String("requestID", r.Header.Get(RequestIDHeader)),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSON(h.logger, w, status, payload)
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}

func scenarioNames(reports []calculator.Report) []string {
	names := make([]string, 0, len(reports))
	for _, report := range reports {
		names = append(names, report.Name)
	}
	return names
}
