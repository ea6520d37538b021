// Package auth provides the session gate of the back-office.
//
// Middleware validates the session cookie, stores the session data in
// fiber.Locals and redirects unauthenticated requests to the login page,
// keeping the requested url in the next parameter.
//
// Usage:
//
//	admin := app.Group("/admin", authmiddleware.Middleware)
package auth
