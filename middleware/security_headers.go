package middleware

import (
	"maps"
	"net/http"

	"github.com/dmitrymomot/staticmount/core/handler"
)

// SecurityHeadersConfig selects the response headers that tell browsers how to
// treat served files. Empty fields are not sent.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// ContentTypeOptions controls X-Content-Type-Options
	ContentTypeOptions string

	// FrameOptions controls X-Frame-Options
	FrameOptions string

	// StrictTransportSecurity controls Strict-Transport-Security
	StrictTransportSecurity string

	// ContentSecurityPolicy controls Content-Security-Policy
	ContentSecurityPolicy string

	// ReferrerPolicy controls Referrer-Policy
	ReferrerPolicy string

	// CrossOriginResourcePolicy controls Cross-Origin-Resource-Policy
	CrossOriginResourcePolicy string

	// CustomHeaders are set after the fields above and may override them
	CustomHeaders map[string]string
}

// AssetSecurity suits files that other origins may embed, such as fonts,
// images and scripts loaded from a CDN-style host.
var AssetSecurity = SecurityHeadersConfig{
	ContentTypeOptions:        "nosniff",
	ReferrerPolicy:            "strict-origin-when-cross-origin",
	CrossOriginResourcePolicy: "cross-origin",
}

// SiteSecurity suits a site whose pages and assets share one origin.
var SiteSecurity = SecurityHeadersConfig{
	ContentTypeOptions:        "nosniff",
	FrameOptions:              "SAMEORIGIN",
	ContentSecurityPolicy:     "default-src 'self'; img-src 'self' data:; font-src 'self' data:",
	ReferrerPolicy:            "strict-origin-when-cross-origin",
	CrossOriginResourcePolicy: "same-origin",
}

// SecurityHeaders applies AssetSecurity.
// X-Content-Type-Options: nosniff keeps browsers from second-guessing the
// Content-Type derived from the file extension.
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](AssetSecurity)
}

// SecurityHeadersWithConfig applies cfg to every response, including error responses.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	headers := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			headers[key] = value
		}
	}
	set("X-Content-Type-Options", cfg.ContentTypeOptions)
	set("X-Frame-Options", cfg.FrameOptions)
	set("Strict-Transport-Security", cfg.StrictTransportSecurity)
	set("Content-Security-Policy", cfg.ContentSecurityPolicy)
	set("Referrer-Policy", cfg.ReferrerPolicy)
	set("Cross-Origin-Resource-Policy", cfg.CrossOriginResourcePolicy)
	maps.Copy(headers, cfg.CustomHeaders)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			response := next(ctx)
			return func(w http.ResponseWriter, r *http.Request) error {
				for key, value := range headers {
					w.Header().Set(key, value)
				}
				if response == nil {
					return handler.ErrNilResponse
				}
				return response(w, r)
			}
		}
	}
}
