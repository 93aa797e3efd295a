// User mutation operations.
package iam

import (
	"context"
	"net/http"
	"net/url"
)

// Delete removes the user from the backend.
func (u *User) Delete(ctx context.Context) error {
	_, status, err := u.client.do(ctx, http.MethodDelete,
		"/usernames/"+url.PathEscape(u.Username), nil,
		http.StatusOK, http.StatusNoContent)
	if status == http.StatusNotFound {
		return &NotFoundError{Kind: "user", ID: u.Username}
	}
	return err
}

// GrantService grants the named service to the user. Granting an already
// granted service is issued regardless; whatever the backend reports is
// surfaced as-is.
func (u *User) GrantService(ctx context.Context, name string) error {
	_, _, err := u.client.do(ctx, http.MethodPost,
		"/usernames/"+url.PathEscape(u.Username)+"/services",
		map[string]string{"name": name},
		http.StatusOK, http.StatusCreated, http.StatusNoContent)
	return err
}

// RevokeService revokes the named service from the user.
func (u *User) RevokeService(ctx context.Context, name string) error {
	_, _, err := u.client.do(ctx, http.MethodDelete,
		"/usernames/"+url.PathEscape(u.Username)+"/services/"+url.PathEscape(name), nil,
		http.StatusOK, http.StatusNoContent)
	return err
}

// SetPassword sets the user's password for one service. An unknown service
// or a backend-side policy rejection is an InvalidServiceError; the caller
// decides whether to continue with other services.
func (u *User) SetPassword(ctx context.Context, password, serviceName string) error {
	_, status, err := u.client.do(ctx, http.MethodPut,
		"/usernames/"+url.PathEscape(u.Username)+"/services/"+url.PathEscape(serviceName)+"/password",
		map[string]string{"password": password},
		http.StatusOK, http.StatusNoContent)
	switch status {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity:
		return &InvalidServiceError{Service: serviceName, Reason: err.Error()}
	}
	return err
}
