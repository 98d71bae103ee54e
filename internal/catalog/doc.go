// Package catalog provides an HTTP client for the exercise catalog API.
//
// # Overview
//
// The client wraps every call in FetchJSON, which resolves a path against the
// configured base URL, encodes an optional JSON body and decodes the JSON
// response. Typed helpers sit on top of it:
//
//   - FetchCategories: GET /filters?filter=<filter>&page=<n>
//   - FetchExercises: GET /exercises?<muscles|bodypart|equipment>=<category>&page=<n>&limit=<n>[&keyword=<kw>]
//   - FetchExercise: GET /exercises/<id>
//   - FetchQuote: GET /quote
//   - Subscribe: POST /subscription
//   - RateExercise: PATCH /exercises/<id>/rating
//
// # Paths
//
// Paths are relative to the base URL, which defaults to DefaultBaseURL. A
// leading /api/ segment is dropped so callers may pass either "/filters" or
// "/api/filters". Absolute http(s) URLs are used as-is.
//
// # Responses
//
// A 204 response, or a body that is not JSON, yields no payload: FetchJSON
// reports false and a nil error. Non-2xx responses produce a *RequestError
// carrying the status, the decoded body and a message chosen from the body's
// "message" field, then its "error" field, then the HTTP status text.
//
// Paged list payloads differ between endpoints. The list is read from
// "results" or "exercises" (or a bare array) and the page count from
// "totalPages", "total_pages" or "pageCount", defaulting to 1.
//
// # Throttling
//
// WithRateLimit installs a token bucket shared by all requests of a client.
// The client is safe for concurrent use.
package catalog
