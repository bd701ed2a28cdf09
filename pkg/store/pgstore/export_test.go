package pgstore

// PgStore exposes pgStore to the external pgstore_test package, which cannot
// live in package pgstore because the nodedb migrations import pgstore.
type PgStore = pgStore
