package normalize

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	DefaultPlaceholder = "/assets/pet-placeholder.png"

	// base64 "desnudo": largo mínimo para considerarlo contenido y no nombre de archivo.
	bareBase64MinLen = 200
)

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// ImageResolver convierte el valor crudo de una imagen en una URL usable.
type ImageResolver struct {
	// MediaURL es la ruta que sirve archivos subidos (p.ej. http://host/api/petcare/uploads/).
	MediaURL    string
	Placeholder string
}

// Resolve aplica en orden: data URI, URL absoluta, base64 sin prefijo,
// ruta relativa contra MediaURL. Vacío => placeholder.
func (r ImageResolver) Resolve(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return r.placeholder()
	}
	if strings.HasPrefix(v, "data:image") {
		return v
	}
	if absoluteURL.MatchString(v) {
		return v
	}
	if looksLikeBase64(v) {
		return "data:image/jpeg;base64," + v
	}
	return r.relative(v)
}

func (r ImageResolver) placeholder() string {
	if strings.TrimSpace(r.Placeholder) == "" {
		return DefaultPlaceholder
	}
	return r.Placeholder
}

func (r ImageResolver) relative(v string) string {
	media := strings.TrimSpace(r.MediaURL)
	if media == "" {
		return v
	}
	if !strings.HasSuffix(media, "/") {
		media += "/"
	}
	base, err := url.Parse(media)
	if err != nil {
		return v
	}
	ref, err := url.Parse(strings.TrimLeft(strings.ReplaceAll(v, `\`, "/"), "/"))
	if err != nil {
		return v
	}
	return base.ResolveReference(ref).String()
}

func looksLikeBase64(v string) bool {
	return len(v) > bareBase64MinLen && !strings.ContainsAny(v, `/\.`)
}
