// Package domain holds the coordinator's core types: users, projects with
// embedded goals and collaborators, invitations with an explicit lifecycle
// state machine, organizations, and chat messages. All mutations are pure
// functions over value types; persistence belongs to the backend consumed
// through the api package.
package domain
