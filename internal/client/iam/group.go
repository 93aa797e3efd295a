// Group mutation operations.
package iam

import (
	"context"
	"net/http"
	"net/url"
)

// AddMembers adds the given usernames to the group and refreshes the local
// membership set from the backend's response. Adding an existing member is
// a no-op at the set level.
func (g *Group) AddMembers(ctx context.Context, usernames ...string) error {
	if len(usernames) == 0 {
		return nil
	}
	raw, status, err := g.client.do(ctx, http.MethodPut,
		"/groups/"+url.PathEscape(g.Name)+"/members",
		map[string][]string{"users": usernames},
		http.StatusOK)
	if status == http.StatusNotFound {
		return &NotFoundError{Kind: "group", ID: g.Name}
	}
	if err != nil {
		return err
	}
	g.refresh(raw)
	return nil
}

// DelMembers removes the given usernames from the group and refreshes the
// local membership set from the backend's response.
func (g *Group) DelMembers(ctx context.Context, usernames ...string) error {
	if len(usernames) == 0 {
		return nil
	}
	raw, status, err := g.client.do(ctx, http.MethodDelete,
		"/groups/"+url.PathEscape(g.Name)+"/members",
		map[string][]string{"users": usernames},
		http.StatusOK)
	if status == http.StatusNotFound {
		return &NotFoundError{Kind: "group", ID: g.Name}
	}
	if err != nil {
		return err
	}
	g.refresh(raw)
	return nil
}

// Delete removes the group from the backend.
func (g *Group) Delete(ctx context.Context) error {
	_, status, err := g.client.do(ctx, http.MethodDelete,
		"/groups/"+url.PathEscape(g.Name), nil,
		http.StatusOK, http.StatusNoContent)
	if status == http.StatusNotFound {
		return &NotFoundError{Kind: "group", ID: g.Name}
	}
	return err
}

func (g *Group) refresh(raw map[string]interface{}) {
	if raw == nil {
		return
	}
	g.Raw = raw
	g.members = memberSet(raw)
}
