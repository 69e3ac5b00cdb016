package database

import (
	"net/url"
	"strings"
)

// ConstructDatabaseURL appends the database name to the base connection URL
// and defaults sslmode to disable when the base URL does not pin one. An
// empty database name leaves the base URL untouched.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/" + databaseName

	query := u.Query()
	if query.Get("sslmode") == "" {
		query.Set("sslmode", "disable")
	}
	u.RawQuery = query.Encode()

	return u.String()
}
