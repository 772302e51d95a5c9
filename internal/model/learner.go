package model

// LearnerID identifies the owner of combined tests and attempts. It is an
// opaque value handed in by the identity layer; this service never parses or
// derives anything from it.
type LearnerID string
