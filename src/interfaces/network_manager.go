package interfaces

// -----------------------------------------------------------------------------
// INetworkManager abstracts outbound HTTP so sources can be tested offline.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// Get performs a GET request with query params, retries and backoff.
	Get(url string, params map[string]string) ([]byte, error)
}
