// Package iam provides the API client for the IAM web service.
//
// Purpose:
//
//	Typed entity handles for Person, User and Group records held by the
//	IAM backend, plus the mutation operations bound to them. Each entity
//	keeps the full backend attribute map in Raw; the typed fields are
//	extracted views of it.
package iam

import (
	"fmt"
	"sort"
)

// NotFoundError indicates the requested entity does not exist at the backend.
type NotFoundError struct {
	Kind string // person, user, group
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// AuthError indicates the backend rejected the admin credentials. It is
// never retried.
type AuthError struct {
	Host string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication against %s failed: %v", e.Host, e.Err)
	}
	return fmt.Sprintf("authentication against %s failed", e.Host)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UnavailableError indicates the backend could not be reached at all:
// the probe request failed before any HTTP status came back. Distinct
// from AuthError so scripts can tell a down backend from bad credentials.
type UnavailableError struct {
	Host string
	Err  error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %s is unreachable: %v", e.Host, e.Err)
	}
	return fmt.Sprintf("backend %s is unreachable", e.Host)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// UnsupportedConfigError indicates a legacy per-user config file exists.
// The legacy format is not implemented and must not be silently ignored.
type UnsupportedConfigError struct {
	Path string
}

func (e *UnsupportedConfigError) Error() string {
	return fmt.Sprintf("legacy config file %s is not supported", e.Path)
}

// InvalidServiceError indicates a service-scoped operation failed
// validation: the service does not exist for the user, or the backend
// rejected the value (e.g. password policy).
type InvalidServiceError struct {
	Service string
	Reason  string
}

func (e *InvalidServiceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q: %s", e.Service, e.Reason)
	}
	return fmt.Sprintf("invalid service %q", e.Service)
}

// ServiceBinding is a service granted to a user, nested in the user's
// attribute map.
type ServiceBinding struct {
	Name        string
	HasPassword bool
}

// Person is a read-only person record.
type Person struct {
	ID  string
	Raw map[string]interface{}

	client *Client
}

// User is a user record with its bound mutation operations.
type User struct {
	Username string
	Services []ServiceBinding
	Raw      map[string]interface{}

	client *Client
}

// Group is a group record with its bound mutation operations. Membership
// is tracked as a set so that add and remove are idempotent regardless of
// how the backend orders its member list.
type Group struct {
	Name string
	Raw  map[string]interface{}

	members map[string]struct{}
	client  *Client
}

// Members returns the current membership, sorted.
func (g *Group) Members() []string {
	members := make([]string, 0, len(g.members))
	for m := range g.members {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}

// HasMember reports whether username is currently a member.
func (g *Group) HasMember(username string) bool {
	_, ok := g.members[username]
	return ok
}

func memberSet(raw map[string]interface{}) map[string]struct{} {
	set := make(map[string]struct{})
	list, ok := raw["members"].([]interface{})
	if !ok {
		return set
	}
	for _, m := range list {
		if s, ok := m.(string); ok {
			set[s] = struct{}{}
		}
	}
	return set
}

// serviceBindings extracts the services list from a user attribute map.
func serviceBindings(raw map[string]interface{}) []ServiceBinding {
	list, ok := raw["services"].([]interface{})
	if !ok {
		return nil
	}
	var bindings []ServiceBinding
	for _, entry := range list {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			continue
		}
		hasPassword, _ := m["hasPassword"].(bool)
		bindings = append(bindings, ServiceBinding{Name: name, HasPassword: hasPassword})
	}
	return bindings
}
