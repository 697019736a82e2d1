// Package service contains the application services that orchestrate
// persistence, the identifier codec and the query option builder. Services
// hold their collaborators as explicit fields; nothing here reaches for
// global state.
package service
