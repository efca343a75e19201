package main

import (
	"context"
	"testing"

	"bloglist/internal/repository"
	"bloglist/internal/repository/db"
	"bloglist/internal/service"
)

func TestSeed_PopulatesUsersAndBlogs(t *testing.T) {
	conn, err := db.InitDB("file:seed_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	services := service.NewService(repository.NewRepository(conn), service.Options{Secret: "seed-secret"})
	ctx := context.Background()

	users, blogs, err := seed(ctx, services)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if users != 2 || blogs != 6 {
		t.Fatalf("seeded %d users and %d blogs, want 2 and 6", users, blogs)
	}

	stats, err := services.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalLikes != 36 {
		t.Fatalf("total likes = %d, want 36", stats.TotalLikes)
	}

	res, err := services.Login(ctx, "admin", seedPassword)
	if err != nil {
		t.Fatalf("login seeded admin: %v", err)
	}
	if res.Name != "John Doe" || res.Token == "" {
		t.Fatalf("unexpected login result: %+v", res)
	}

	list, err := services.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	for _, u := range list {
		if len(u.Blogs) != 3 {
			t.Fatalf("user %s owns %d blogs, want 3", u.Username, len(u.Blogs))
		}
	}
}
