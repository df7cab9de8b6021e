// Package domain contains the core entities of the vocabulary application:
// learnable items, their per-direction review states, decks, and the
// session-scoped study card that joins them. Types here are persistence-agnostic;
// stores and services depend on this package, never the other way around.
package domain
