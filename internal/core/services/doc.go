// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The Flattener and Differ are pure functions of their inputs; the
// comparison and impact services add parsing, logging and model calls.
package services
