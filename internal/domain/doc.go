// Package domain contains the core entities of the application (cards and
// decks), the invariants they must satisfy, and the closed error taxonomy
// shared by the generation pipeline and the deck repository. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
