// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Training happens once through Train, which returns an immutable
// Pipeline; ChatService serves queries against it.
//
// Services are pure Go with no CGO.
package services
