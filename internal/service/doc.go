// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// (defined in internal/store) to fulfill application features: vocabulary
// item management, deck curation, study sessions, and data export.
//
// Services receive dependencies through constructor injection and apply
// transactional boundaries when an operation spans multiple stores. They
// translate store-level errors into application-level errors that the API
// layer maps onto HTTP status codes, and never depend on a concrete
// persistence implementation.
package service
