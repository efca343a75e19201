package service

import (
	"strings"

	"bloglist/internal/models"

	"github.com/google/uuid"
)

// UpdateRule names the rule under which a PUT was allowed.
type UpdateRule int

const (
	RuleOwner UpdateRule = iota + 1
	// RuleLike lets any signed-in user bump likes by exactly one.
	RuleLike
)

// parseID accepts only canonical UUID strings.
func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil || len(id) != 36 {
		return "", ErrMalformedID
	}
	return u.String(), nil
}

// ValidateNewBlog checks a create body. It runs before the identity check.
func ValidateNewBlog(in NewBlog) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return validationf("title is required")
	case strings.TrimSpace(in.URL) == "":
		return validationf("url is required")
	case in.Likes != nil && *in.Likes < 0:
		return validationf("likes must not be negative")
	}
	return nil
}

// ValidatePatch checks only the fields present in p.
func ValidatePatch(p BlogPatch) error {
	if p.Title.Set && (p.Title.Value == nil || strings.TrimSpace(*p.Title.Value) == "") {
		return validationf("title is required")
	}
	if p.URL.Set && (p.URL.Value == nil || strings.TrimSpace(*p.URL.Value) == "") {
		return validationf("url is required")
	}
	if p.Likes.Set && (p.Likes.Value == nil || *p.Likes.Value < 0) {
		return validationf("likes must be a non-negative number")
	}
	return nil
}

// AuthorizeUpdate decides whether who may apply p to b.
func AuthorizeUpdate(who Identity, b models.Blog, p BlogPatch, likeBypass bool) (UpdateRule, error) {
	if !who.IsAuthenticated() {
		return 0, ErrUnauthorized
	}
	if b.OwnedBy(who.UserID()) {
		return RuleOwner, nil
	}
	if likeBypass && p.Likes.Set && p.Likes.Value != nil && *p.Likes.Value == b.Likes+1 {
		return RuleLike, nil
	}
	return 0, ErrNotOwner
}

// AuthorizeDelete allows only the creator to delete b.
func AuthorizeDelete(who Identity, b models.Blog) error {
	if !who.IsAuthenticated() {
		return ErrUnauthorized
	}
	if !b.OwnedBy(who.UserID()) {
		return ErrNotOwner
	}
	return nil
}

// ApplyPatch returns b with the fields allowed by rule copied from p.
func ApplyPatch(b models.Blog, p BlogPatch, rule UpdateRule) models.Blog {
	if rule == RuleLike {
		b.Likes++
		return b
	}
	if p.Title.Set && p.Title.Value != nil {
		b.Title = *p.Title.Value
	}
	if p.Author.Set {
		b.Author = ""
		if p.Author.Value != nil {
			b.Author = *p.Author.Value
		}
	}
	if p.URL.Set && p.URL.Value != nil {
		b.URL = *p.URL.Value
	}
	if p.Likes.Set && p.Likes.Value != nil {
		b.Likes = *p.Likes.Value
	}
	return b
}

// PatchChanges maps an owner patch to the columns it writes. A null author
// clears it; other null fields are rejected by ValidatePatch first.
func PatchChanges(p BlogPatch) models.BlogChanges {
	var c models.BlogChanges
	if p.Title.Set {
		c.Title = p.Title.Value
	}
	if p.Author.Set {
		empty := ""
		c.Author = &empty
		if p.Author.Value != nil {
			c.Author = p.Author.Value
		}
	}
	if p.URL.Set {
		c.URL = p.URL.Value
	}
	if p.Likes.Set {
		c.Likes = p.Likes.Value
	}
	return c
}
