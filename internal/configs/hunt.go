package configs

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"flathunter-service/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v2"
)

//go:embed schemas/*.json
var schemasFS embed.FS

const huntSchemaPath = "schemas/hunt_v1.json"

// DefaultMessageTemplate используется, если в файле охоты шаблон не задан
const DefaultMessageTemplate = `{title}
Zimmer: {rooms}
Größe: {size}
Kaltmiete: {price}
Warmmiete: {total_price}
Frei ab: {free_from}
{durations}

{url}`

// FilterConfig - границы фильтров. nil означает, что граница не задана
type FilterConfig struct {
	MinPrice       *float64 `yaml:"min_price" json:"min_price"`
	MaxPrice       *float64 `yaml:"max_price" json:"max_price"`
	MinSize        *float64 `yaml:"min_size" json:"min_size"`
	MaxSize        *float64 `yaml:"max_size" json:"max_size"`
	MinRooms       *float64 `yaml:"min_rooms" json:"min_rooms"`
	MaxRooms       *float64 `yaml:"max_rooms" json:"max_rooms"`
	ExcludedTitles []string `yaml:"excluded_titles" json:"excluded_titles"`
}

type TelegramReceivers struct {
	ReceiverIDs []int64 `yaml:"receiver_ids" json:"receiver_ids"`
}

type DurationConfig struct {
	Name        string   `yaml:"name" json:"name"`
	Destination string   `yaml:"destination" json:"destination"`
	Modes       []string `yaml:"modes" json:"modes"`
}

// HuntConfig - что и как искать. Читается из YAML-файла
type HuntConfig struct {
	URLs      []string          `yaml:"urls" json:"urls"`
	MaxPages  int               `yaml:"max_pages" json:"max_pages"`
	Message   string            `yaml:"message" json:"message"`
	Filters   FilterConfig      `yaml:"filters" json:"filters"`
	Telegram  TelegramReceivers `yaml:"telegram" json:"telegram"`
	Durations []DurationConfig  `yaml:"durations" json:"durations"`
}

// Destinations переводит настройки расчета времени в пути в доменные структуры
func (h *HuntConfig) Destinations() []domain.Destination {
	dests := make([]domain.Destination, 0, len(h.Durations))
	for _, d := range h.Durations {
		modes := make([]domain.TravelMode, 0, len(d.Modes))
		for _, m := range d.Modes {
			modes = append(modes, domain.TravelMode(m))
		}
		dests = append(dests, domain.Destination{Name: d.Name, Address: d.Destination, Modes: modes})
	}
	return dests
}

// LoadHuntConfig читает файл охоты
func LoadHuntConfig(path string) (*HuntConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hunt config: could not read %s: %w", path, err)
	}
	return ParseHuntConfig(raw)
}

// ParseHuntConfig проверяет YAML по JSON-схеме и разбирает его в HuntConfig
func ParseHuntConfig(raw []byte) (*HuntConfig, error) {
	var generic interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("hunt config: invalid yaml: %w", err)
	}

	if err := validateHuntDocument(generic); err != nil {
		return nil, err
	}

	cfg := &HuntConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("hunt config: could not decode: %w", err)
	}
	if cfg.Message == "" {
		cfg.Message = DefaultMessageTemplate
	}

	return cfg, nil
}

func validateHuntDocument(doc interface{}) error {
	schemaBytes, err := schemasFS.ReadFile(huntSchemaPath)
	if err != nil {
		return fmt.Errorf("hunt config: schema not embedded: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(huntSchemaPath, bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("hunt config: failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile(huntSchemaPath)
	if err != nil {
		return fmt.Errorf("hunt config: failed to compile schema: %w", err)
	}

	// yaml.v2 отдает map[interface{}]interface{}, валидатору нужен JSON-совместимый документ
	jsonBytes, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return fmt.Errorf("hunt config: could not convert to json: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(jsonBytes))
	decoder.UseNumber()
	var jsonDoc interface{}
	if err := decoder.Decode(&jsonDoc); err != nil {
		return fmt.Errorf("hunt config: could not convert to json: %w", err)
	}

	if err := schema.Validate(jsonDoc); err != nil {
		return fmt.Errorf("hunt config: validation failed: %w", err)
	}
	return nil
}

func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return val
	}
}
