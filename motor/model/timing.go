package model

// Timings contains the network phases of a single round trip, in milliseconds.
// A value of -1 means the phase does not apply.
type Timings struct {
	// Blocked is the Time spent in a queue waiting for a network connection
	Blocked float64 `json:"blocked"`
	// DNS is the domain name resolution time
	DNS float64 `json:"dns"`
	// Connect is the Time required to create TCP connection.
	Connect float64 `json:"connect"`
	// Send is the Time required to send this request to the server.
	Send float64 `json:"send"`
	// Wait is the Time spent waiting on a response from the server.
	Wait float64 `json:"wait"`
	// Receive is the Time spent reading the entire response from the server.
	Receive float64 `json:"receive"`
	// SSL is the Time required to negotiate the SSL/TLS connection.
	// Note: if defined this time is included in Connect.
	SSL float64 `json:"ssl"`
}
