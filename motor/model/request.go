package model

// Request contains the request description and content.
type Request struct {
	// Method of the HTTP request, in caps, GET/POST/etc
	Method string `json:"method"`

	// URL of the request (absolute), with fragments removed.
	URL string `json:"url"`

	// HTTPVersion of the request
	HTTPVersion string `json:"httpVersion"` // ex "HTTP/1.1"

	// Headers sent with the request
	Headers []NameValuePair `json:"headers"`

	// QueryParams parsed from the URL
	QueryParams []NameValuePair `json:"queryString"`

	// Body of the request (e.g. from a POST), nil when nothing was posted.
	Body *PostData `json:"postData,omitempty"`
}

// PostData contains information about the body of a request
type PostData struct {
	// MIMEType of the body content
	MIMEType string `json:"mimeType"`
	// Text of the posted body
	Text string `json:"text"`
}
