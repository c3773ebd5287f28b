// Package bouncersdk provides the shared request/response types for the
// bouncer HTTP API and a small Go client for it.
//
// The server handlers use these types to shape their JSON bodies, so the
// client and server can never drift apart.
//
// Basic usage:
//
//	client := bouncersdk.NewClient("http://localhost:8080")
//	if _, err := client.Login(ctx, "admin", "password", ""); err != nil {
//		return err
//	}
//	info, err := client.UserInfo(ctx)
package bouncersdk
