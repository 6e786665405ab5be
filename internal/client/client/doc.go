// Package client contains the terminal client's building blocks for talking
// to the GrowFlow server.
//
// # Overview
//
//  1. Client, the REST API contract: Register/Login, CurrentUser and task CRUD.
//  2. HTTPClient, its net/http implementation. It attaches the bearer token
//     and turns {"msg"} error bodies into *APIError.
//  3. InitDatabase and RunMigrations, which open the local sqlite store and
//     apply the embedded goose migrations.
//
// # Error Handling
//
// *APIError wraps ErrUnauthorized (401), ErrNotFound (404) or ErrUnavailable
// (5xx); transport failures wrap ErrUnavailable too. Match with errors.Is.
package client
