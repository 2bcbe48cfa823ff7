package mapping

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

var (
	errNotNumber    = errors.New("not a number")
	errNotFinite    = errors.New("number is not finite")
	errNotBool      = errors.New("not a boolean")
	errNotString    = errors.New("not a string")
	errNotTime      = errors.New("not a timestamp")
	errNotList      = errors.New("not a list")
	errNotObject    = errors.New("not an object")
	errUnknownValue = errors.New("unknown enum value")
)

// Каждый конвертер возвращает значение, пояснение (пустое, если тип совпал сразу) и ошибку.
// Непустое пояснение превращается в событие coercion.

func toString(v any) (string, string, error) {
	switch t := v.(type) {
	case string:
		return t, "", nil
	case bool:
		return strconv.FormatBool(t), "boolean rendered as string", nil
	case json.Number:
		return t.String(), "number rendered as string", nil
	case docstore.Reference:
		return t.Path, "reference rendered as path", nil
	}
	if d, ok := numeric(v); ok {
		return d.String(), "number rendered as string", nil
	}
	return "", "", fmt.Errorf("%w: %T", errNotString, v)
}

// toID принимает строку, ссылку на документ или число
func toID(v any) (string, string, error) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), "", nil
	case docstore.Reference:
		return t.ID, "reference resolved to document id", nil
	case map[string]any:
		if id, ok := t["id"].(string); ok {
			return id, "object resolved to its id", nil
		}
	}
	if d, ok := numeric(v); ok {
		return d.String(), "number rendered as id", nil
	}
	return "", "", fmt.Errorf("%w: %T", errNotString, v)
}

// numeric распознаёт числовые типы без разбора строк
func numeric(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int8:
		return decimal.NewFromInt(int64(t)), true
	case int16:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case uint:
		return decimal.NewFromUint64(uint64(t)), true
	case uint8:
		return decimal.NewFromUint64(uint64(t)), true
	case uint16:
		return decimal.NewFromUint64(uint64(t)), true
	case uint32:
		return decimal.NewFromUint64(uint64(t)), true
	case uint64:
		return decimal.NewFromUint64(t), true
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(t), true
	case decimal.Decimal:
		return t, true
	}
	return decimal.Decimal{}, false
}

func toDecimal(v any) (decimal.Decimal, string, error) {
	if d, ok := numeric(v); ok {
		return d, "", nil
	}
	switch t := v.(type) {
	case float64, float32:
		return decimal.Decimal{}, "", errNotFinite
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Decimal{}, "", fmt.Errorf("%w: %q", errNotNumber, t)
		}
		return d, "", nil
	case string:
		s := strings.TrimSpace(t)
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, "", fmt.Errorf("%w: %q", errNotNumber, t)
		}
		return d, "numeric string parsed", nil
	}
	return decimal.Decimal{}, "", fmt.Errorf("%w: %T", errNotNumber, v)
}

func toInt(v any) (int, string, error) {
	d, note, err := toDecimal(v)
	if err != nil {
		return 0, "", err
	}
	if !d.IsInteger() {
		return int(d.IntPart()), "fraction truncated", nil
	}
	return int(d.IntPart()), note, nil
}

func toBool(v any) (bool, string, error) {
	switch t := v.(type) {
	case bool:
		return t, "", nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1":
			return true, "boolean string parsed", nil
		case "false", "no", "0", "":
			return false, "boolean string parsed", nil
		}
		return false, "", fmt.Errorf("%w: %q", errNotBool, t)
	}
	if d, ok := numeric(v); ok {
		switch {
		case d.IsZero():
			return false, "number read as boolean", nil
		case d.Equal(decimal.NewFromInt(1)):
			return true, "number read as boolean", nil
		}
	}
	if n, ok := v.(json.Number); ok {
		switch n.String() {
		case "0":
			return false, "number read as boolean", nil
		case "1":
			return true, "number read as boolean", nil
		}
	}
	return false, "", fmt.Errorf("%w: %T", errNotBool, v)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// unix-отметки больше этого значения считаются миллисекундами
const millisThreshold = 1e12

func toTime(v any) (time.Time, string, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), "", nil
	case *time.Time:
		if t != nil {
			return t.UTC(), "", nil
		}
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), "timestamp string parsed", nil
			}
		}
		return time.Time{}, "", fmt.Errorf("%w: %q", errNotTime, t)
	case map[string]any:
		return timeFromMap(t)
	}
	if d, _, err := toDecimal(v); err == nil {
		return unixTime(d), "unix timestamp converted", nil
	}
	return time.Time{}, "", fmt.Errorf("%w: %T", errNotTime, v)
}

// timeFromMap разбирает сериализованные отметки вида {_seconds,_nanoseconds} и {seconds,nanos}
func timeFromMap(m map[string]any) (time.Time, string, error) {
	for _, keys := range [][2]string{{"_seconds", "_nanoseconds"}, {"seconds", "nanos"}} {
		raw, ok := m[keys[0]]
		if !ok {
			continue
		}
		sec, _, err := toInt(raw)
		if err != nil {
			return time.Time{}, "", fmt.Errorf("%w: %v", errNotTime, err)
		}
		var nsec int
		if rawNanos, ok := m[keys[1]]; ok {
			if nsec, _, err = toInt(rawNanos); err != nil {
				return time.Time{}, "", fmt.Errorf("%w: %v", errNotTime, err)
			}
		}
		return time.Unix(int64(sec), int64(nsec)).UTC(), "serialized timestamp converted", nil
	}
	return time.Time{}, "", fmt.Errorf("%w: object without seconds", errNotTime)
}

func unixTime(d decimal.Decimal) time.Time {
	if d.Abs().GreaterThan(decimal.NewFromFloat(millisThreshold)) {
		return time.UnixMilli(d.IntPart()).UTC()
	}
	sec := d.IntPart()
	nsec := d.Sub(decimal.NewFromInt(sec)).Mul(decimal.NewFromInt(int64(time.Second))).IntPart()
	return time.Unix(sec, nsec).UTC()
}

func toObject(v any) (map[string]any, string, error) {
	switch t := v.(type) {
	case map[string]any:
		return t, "", nil
	case docstore.Document:
		return map[string]any(t), "", nil
	}
	return nil, "", fmt.Errorf("%w: %T", errNotObject, v)
}

func toList(v any) ([]any, string, error) {
	switch t := v.(type) {
	case []any:
		return t, "", nil
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, "", nil
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out, "", nil
	case map[string]any:
		// списки, сохранённые как объект с числовыми ключами
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, errA := strconv.Atoi(keys[i])
			b, errB := strconv.Atoi(keys[j])
			if errA == nil && errB == nil {
				return a < b
			}
			return keys[i] < keys[j]
		})
		out := make([]any, 0, len(t))
		for _, k := range keys {
			out = append(out, t[k])
		}
		return out, "object read as list", nil
	}
	return nil, "", fmt.Errorf("%w: %T", errNotList, v)
}

func toStringList(v any) ([]string, string, error) {
	if s, ok := v.(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, "comma separated string split", nil
	}
	items, note, err := toList(v)
	if err != nil {
		return nil, "", err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		s, itemNote, err := toString(item)
		if err != nil {
			return nil, "", err
		}
		if note == "" {
			note = itemNote
		}
		out = append(out, s)
	}
	return out, note, nil
}

// portable приводит непрозрачный payload к JSON-совместимому виду.
// Для каждого преобразования с потерями вызывается lossy с путём к значению.
func portable(v any, path string, lossy func(path string, raw any, resolution string)) any {
	switch t := v.(type) {
	case nil, string, bool, int, int32, int64, time.Time:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			lossy(path, t, "non-finite number replaced with null")
			return nil
		}
		return t
	case float32:
		return portable(float64(t), path, lossy)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case docstore.Document:
		return portable(map[string]any(t), path, lossy)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = portable(item, joinPath(path, k), lossy)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = portable(item, fmt.Sprintf("%s[%d]", path, i), lossy)
		}
		return out
	case docstore.Reference:
		lossy(path, t, "reference replaced with its path")
		return t.Path
	case docstore.GeoPoint:
		lossy(path, t, "geo point replaced with latitude/longitude object")
		return map[string]any{"latitude": t.Latitude, "longitude": t.Longitude}
	}
	if d, ok := numeric(v); ok {
		if d.IsInteger() {
			return d.IntPart()
		}
		return d.InexactFloat64()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = portable(rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i), lossy)
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			out := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				k := iter.Key().String()
				out[k] = portable(iter.Value().Interface(), joinPath(path, k), lossy)
			}
			return out
		}
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	lossy(path, v, fmt.Sprintf("%T rendered as string", v))
	return fmt.Sprint(v)
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
