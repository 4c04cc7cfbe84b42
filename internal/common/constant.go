package common

// RequestIDHeaderName is the HTTP header used to correlate a request across
// the access log and the response.
const RequestIDHeaderName = "X-Request-ID"

// MinPasswordLength is the shortest password accepted on password change.
const MinPasswordLength = 6
