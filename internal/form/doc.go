// Package form turns loosely typed request bodies into typed, validated
// payloads.
//
// A request passes through two stages. Normalize coerces the string values
// of form-encoded submissions into the types an entity declares ("2023"
// becomes 2023, "true" becomes true) and leaves anything it cannot convert
// untouched. Validate then checks the normalized values against the entity
// Contract and reports every violation at once, so a form can be corrected
// in a single round trip.
package form
