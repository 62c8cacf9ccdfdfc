package repository

import "fmt"

const defaultAppID = "default-app-id"

// Paths builds collection paths namespaced by an application id
type Paths struct {
	appID string
}

// NewPaths returns Paths for appID, falling back to the default tenant
func NewPaths(appID string) Paths {
	if appID == "" {
		appID = defaultAppID
	}
	return Paths{appID: appID}
}

func (p Paths) AppID() string {
	return p.appID
}

// Jobs holds JobRecords keyed by job id
func (p Paths) Jobs() string {
	return fmt.Sprintf("artifacts/%s/public/data/jobs", p.appID)
}

// SearchCache holds CachedSearchResults keyed by cache key
func (p Paths) SearchCache() string {
	return fmt.Sprintf("artifacts/%s/public/data/jobSearches", p.appID)
}

// Applications holds one user's submitted applications
func (p Paths) Applications(userID string) string {
	return fmt.Sprintf("artifacts/%s/users/%s/applications", p.appID, userID)
}
