package handlers

// CreateShortURLRequest is the request body for creating a short URL.
type CreateShortURLRequest struct {
	Body struct {
		OriginalURL string `doc:"The absolute http or https URL to shorten" example:"https://example.com/very/long/path" json:"original_url"`
	}
}

// ShortURLBody is the wire form of a stored short URL.
type ShortURLBody struct {
	ShortURL    string `doc:"The short code"   example:"8M0kX"                              json:"short_url"`
	OriginalURL string `doc:"The original URL" example:"https://example.com/very/long/path" json:"original_url"`
}

// CreateShortURLResponse is the response for a successfully created short URL.
type CreateShortURLResponse struct {
	Body ShortURLBody
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"8M0kX" path:"code"`
}

// RedirectResponse is a permanent redirect to the original URL.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The original URL" header:"Location"`
}

// ListShortURLsResponse lists every stored short URL.
type ListShortURLsResponse struct {
	Body []ShortURLBody
}

// BannerResponse is the plain text liveness banner.
type BannerResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
