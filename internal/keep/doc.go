// Package keep provides a client for creating Google Keep notes.
//
// Keep has no official consumer API, so the primary client uses the
// Android client-login flow: the account email and a Google app password
// are exchanged for a master token, which authenticates note creation.
// The master token is cached encrypted between invocations (see package
// tokencache), so a valid cache entry costs no login round-trip.
//
// The exchange endpoint is unofficial and is therefore injectable via
// WithAuthURL / WithAPIURL, which is also what the tests use.
//
// For Workspace domains the official Keep API (keep/v1) is available
// through ServiceAccountClient, which impersonates a user via a
// service-account key with domain-wide delegation.
//
// Example usage:
//
//	cache, err := tokencache.NewFileCache(path, appPassword)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := keep.NewClient("user@gmail.com", appPassword, cache)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	note, err := client.CreateNote(ctx, "Todo", "Buy milk")
package keep
