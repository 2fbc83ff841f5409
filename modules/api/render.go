package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"

	domain "github.com/example/drive-gateway-demo/domain/drive"
)

//go:embed templates/*.html
var templates embed.FS

var listingTmpl = template.Must(
	template.New("listing.html").Funcs(template.FuncMap{
		// Names are escaped for the serve-route link with the same pair
		// that ServeFile decodes with, so generated links round-trip.
		"pathEscape": url.PathEscape,
	}).ParseFS(templates, "templates/listing.html"),
)

// ListingData is the template payload for the folder listing page.
type ListingData struct {
	Files []domain.File
}

// renderListing renders the listing page with one block per entry, keeping
// provider order.
func renderListing(files []domain.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := listingTmpl.Execute(&buf, ListingData{Files: files}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
