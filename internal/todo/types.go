package todo

// Category classifies a failed submission for user-facing reporting.
type Category string

const (
	// CategoryValidation: the input was empty after sanitization.
	CategoryValidation Category = "validation"

	// CategoryMissingCredentials: no credentials are configured.
	CategoryMissingCredentials Category = "missing_credentials"

	// CategoryInvalidCredentials: the backend rejected the credentials.
	CategoryInvalidCredentials Category = "invalid_credentials"

	// CategoryTokenDecrypt: the cached token could not be decrypted.
	CategoryTokenDecrypt Category = "token_decrypt"

	// CategoryNetwork: the backend was unreachable or returned a
	// server-side failure.
	CategoryNetwork Category = "network"
)

// Receipt confirms a successful submission. It is only used for the
// user-facing notification; the remote service owns the item afterwards.
type Receipt struct {
	// ID is the identifier assigned by the remote service
	ID string

	// Title is the sanitized text that was submitted
	Title string

	// Service names the backend ("keep" or "tasks")
	Service string
}
