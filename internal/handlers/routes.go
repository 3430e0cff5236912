package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// BannerText is served on the root path.
const BannerText = "URL Shortener is running!"

// APIConfig is huma.DefaultConfig without the schema link hook, so JSON
// bodies carry exactly their documented fields.
func APIConfig(title, version string) huma.Config {
	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil

	return config
}

// RegisterRoutes registers all URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "create-short-url",
		Method:      http.MethodPost,
		Path:        "/api/shorturl",
		Summary:     "Create short URL",
		Description: "Stores the URL under a freshly generated code. Identical URLs are not deduplicated.",
		Tags:        []string{"URLs"},
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID:   "redirect-short-url",
		Method:        http.MethodGet,
		Path:          "/api/shorturl/{code}",
		Summary:       "Redirect to original URL",
		Description:   "Permanently redirects to the original URL associated with the short code.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusPermanentRedirect,
	}, urlHandler.RedirectToURL)

	huma.Register(api, huma.Operation{
		OperationID: "list-short-urls",
		Method:      http.MethodGet,
		Path:        "/api/shorturls",
		Summary:     "List short URLs",
		Tags:        []string{"URLs"},
	}, urlHandler.ListShortURLs)

	huma.Register(api, huma.Operation{
		OperationID: "banner",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Liveness banner",
		Tags:        []string{"Health"},
	}, urlHandler.Banner)
}
