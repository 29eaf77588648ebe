// Package service contains the application use cases that sit between the
// HTTP and CLI delivery mechanisms and the persistence port in internal/store.
//
// DeckRepository is the single use case today. It enforces the deck
// invariants from internal/domain before any store access, runs each write in
// one transaction and translates store sentinels into *domain.Error kinds so
// callers never depend on store errors.
package service
