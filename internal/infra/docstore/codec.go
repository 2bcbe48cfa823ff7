package docstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Маркеры для типов, которых нет в JSON
const (
	markerTime = "__time__"
	markerRef  = "__ref__"
	markerGeo  = "__geo__"
)

// EncodeJSON сериализует документ в JSON, сохраняя время, ссылки и координаты через маркеры
func EncodeJSON(doc Document) ([]byte, error) {
	data, err := json.Marshal(ToPortable(map[string]any(doc)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

// DecodeJSON разбирает документ, записанный EncodeJSON. Числа приходят как json.Number.
func DecodeJSON(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	doc, _ := FromPortable(raw).(map[string]any)
	return Document(doc), nil
}

// ToPortable заменяет значения, не представимые в JSON, на маркерные объекты.
// NaN и бесконечности превращаются в nil.
func ToPortable(v any) any {
	switch t := v.(type) {
	case Document:
		return ToPortable(map[string]any(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = ToPortable(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = ToPortable(item)
		}
		return out
	case time.Time:
		return map[string]any{markerTime: t.UTC().Format(time.RFC3339Nano)}
	case Reference:
		return map[string]any{markerRef: t.Path}
	case GeoPoint:
		return map[string]any{markerGeo: []any{t.Latitude, t.Longitude}}
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return t
	case float32:
		return ToPortable(float64(t))
	default:
		return v
	}
}

// FromPortable восстанавливает значения из маркерных объектов
func FromPortable(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 1 {
			if s, ok := t[markerTime].(string); ok {
				if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
					return ts
				}
			}
			if s, ok := t[markerRef].(string); ok {
				return ParseReference(s)
			}
			if pair, ok := t[markerGeo].([]any); ok && len(pair) == 2 {
				lat, latOK := toFloat(pair[0])
				lng, lngOK := toFloat(pair[1])
				if latOK && lngOK {
					return GeoPoint{Latitude: lat, Longitude: lng}
				}
			}
		}
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = FromPortable(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = FromPortable(item)
		}
		return out
	default:
		return v
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
