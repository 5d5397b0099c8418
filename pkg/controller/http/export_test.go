package http

import "net/http"

// FallbackHome serves the page shown when the frontend bundle is missing
func FallbackHome(uc *UseCases) http.HandlerFunc {
	return (&handler{uc: uc}).fallbackHome
}
