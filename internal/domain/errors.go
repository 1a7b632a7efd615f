package domain

// InvalidRequestError rejects caller input before any computation or I/O.
// The API layer maps it to a client error rather than a 500.
type InvalidRequestError struct {
	Reason string
}

func (e InvalidRequestError) Error() string {
	return e.Reason
}
