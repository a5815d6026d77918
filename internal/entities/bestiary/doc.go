// Package bestiary provides the creature data model shared by the cache,
// the repository and the encounter orchestrator.
package bestiary
