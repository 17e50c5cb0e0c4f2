package normalize

// envelopeKeys en orden de prueba.
var envelopeKeys = []string{"content", "data", "items"}

// UnwrapList extrae la lista de una respuesta: array directo o bajo
// content/data/items. Cualquier otra forma devuelve lista vacía.
// Elementos que no son objetos se descartan.
func UnwrapList(v any) []Raw {
	if arr, ok := v.([]any); ok {
		return objects(arr)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return []Raw{}
	}
	for _, k := range envelopeKeys {
		if arr, ok := m[k].([]any); ok {
			return objects(arr)
		}
	}
	return []Raw{}
}

// UnwrapOne devuelve el objeto de una respuesta de detalle, aceptando
// también la envoltura {data: {...}}.
func UnwrapOne(v any) Raw {
	m, ok := v.(map[string]any)
	if !ok {
		return Raw{}
	}
	if inner, ok := m["data"].(map[string]any); ok {
		return inner
	}
	return m
}

func objects(arr []any) []Raw {
	out := make([]Raw, 0, len(arr))
	for _, it := range arr {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// List normaliza cada elemento de la respuesta con fn.
func List[T any](v any, fn func(Raw) T) []T {
	items := UnwrapList(v)
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
