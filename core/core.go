// Package core is the scoring engine of cybercompass.
//
// A ScoreState accumulates weighted answers for one session and exposes
// derived views: raw and normalized category scores, role probabilities,
// knowledge level and archetype. The role and gap functions are pure lookups
// over a ScoreState and the static tables in package schema.
package core
