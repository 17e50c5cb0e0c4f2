package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Raw es un registro tal como llega del backend.
type Raw = map[string]any

// Decode parsea JSON preservando números como json.Number.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Lookup resuelve un path con puntos ("usuario.id") sobre el registro.
func Lookup(r Raw, path string) (any, bool) {
	if r == nil {
		return nil, false
	}
	var cur any = r
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// present: definido, no-null y no vacío.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	default:
		return true
	}
}

// Int devuelve el primer candidato presente que sea numérico.
// Candidatos no numéricos (o NaN) se saltan.
func Int(r Raw, paths []string) (int64, bool) {
	for _, p := range paths {
		v, ok := Lookup(r, p)
		if !ok || !present(v) {
			continue
		}
		if n, ok := ToInt(v); ok {
			return n, true
		}
	}
	return 0, false
}

// Float igual que Int pero conserva decimales.
func Float(r Raw, paths []string) (float64, bool) {
	for _, p := range paths {
		v, ok := Lookup(r, p)
		if !ok || !present(v) {
			continue
		}
		if f, ok := ToFloat(v); ok {
			return f, true
		}
	}
	return 0, false
}

func String(r Raw, paths []string) string {
	for _, p := range paths {
		v, ok := Lookup(r, p)
		if !ok || !present(v) {
			continue
		}
		switch x := v.(type) {
		case string:
			return strings.TrimSpace(x)
		case json.Number:
			return x.String()
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(x)
		}
	}
	return ""
}

func Bool(r Raw, paths []string) bool {
	for _, p := range paths {
		v, ok := Lookup(r, p)
		if !ok || !present(v) {
			continue
		}
		if b, ok := ToBool(v); ok {
			return b
		}
	}
	return false
}

func Decimal(r Raw, paths []string) decimal.Decimal {
	for _, p := range paths {
		v, ok := Lookup(r, p)
		if !ok || !present(v) {
			continue
		}
		if d, ok := ToDecimal(v); ok {
			return d
		}
	}
	return decimal.Zero
}

// Time devuelve el primer candidato parseable; zero si ninguno.
func Time(r Raw, paths []string) time.Time {
	for _, p := range paths {
		v, ok := Lookup(r, p)
		if !ok || !present(v) {
			continue
		}
		if t, ok := ToTime(v); ok {
			return t
		}
	}
	return time.Time{}
}

func ToFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func ToInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64); err == nil {
			return n, true
		}
	}
	f, ok := ToFloat(v)
	if !ok || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func ToBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1", "si", "sí", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		}
		return false, false
	}
	f, ok := ToFloat(v)
	if !ok {
		return false, false
	}
	return f != 0, true
}

func ToDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		return d, err == nil
	}
	f, ok := ToFloat(v)
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ToTime acepta LocalDate, ISO-8601 con o sin zona y epoch en milisegundos.
// Fechas sin zona se interpretan en UTC.
func ToTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	ms, ok := ToInt(v)
	if !ok || ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
