package leads

import "errors"

// ErrStoreNotConfigured is returned by NullRepository for every write.
var ErrStoreNotConfigured = errors.New("leads: database not configured")
