package model

// NameValuePair is a name and value, paired. Used for headers and query parameters,
// order is preserved as recorded.
type NameValuePair struct {
	// Name of the parameter
	Name string `json:"name"`
	// Value of the parameter
	Value string `json:"value"`
}
