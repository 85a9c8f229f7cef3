package model

// Response contains the response description and content.
type Response struct {
	// StatusCode indicates the response status
	StatusCode int `json:"status"` // 200

	// StatusText describes the response status
	StatusText string `json:"statusText"` // "OK"

	// HTTPVersion of the HTTP response
	HTTPVersion string `json:"httpVersion"` // ex "HTTP/1.1"

	// Headers sent with the response
	// NB Headers may include values added by the browser but not included in server's response.
	Headers []NameValuePair `json:"headers"`

	// Content describes the response body.
	Content Content `json:"content"`
}

// Content contains information about the response body.
type Content struct {
	// Size of response content in bytes (decompressed).
	Size int64 `json:"size"`
	// MIMEType of the body content
	MIMEType string `json:"mimeType"`
	// Text is the body itself, when it was recorded.
	Text string `json:"text,omitempty"`
}
