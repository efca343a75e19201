package main

import (
	"context"
	"fmt"

	"bloglist/internal/config"
	"bloglist/internal/logger"
	"bloglist/internal/models"
	"bloglist/internal/mq"
	"bloglist/internal/repository"
	"bloglist/internal/repository/db"
	"bloglist/internal/service"

	"github.com/spf13/cobra"
)

const seedPassword = "password"

var seedUsers = []service.NewUser{
	{Username: "user123", Name: "Account Owner", Password: seedPassword},
	{Username: "admin", Name: "John Doe", Password: seedPassword},
}

// seedBlogs maps each seeded username to the blogs it owns.
var seedBlogs = map[string][]service.NewBlog{
	"user123": {
		{Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: intPtr(7)},
		{Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://www.u.arizona.edu/~rubinson/copyright_violations/Go_To_Considered_Harmful.html", Likes: intPtr(5)},
		{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html", Likes: intPtr(12)},
	},
	"admin": {
		{Title: "First class tests", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/05/05/TestDefinitions.htmll", Likes: intPtr(10)},
		{Title: "TDD harms architecture", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/03/03/TDD-Harms-Architecture.html", Likes: intPtr(0)},
		{Title: "Type wars", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html", Likes: intPtr(2)},
	},
}

func intPtr(v int) *int { return &v }

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Wipe the database and load demo users and blogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.Get(cfg.Log.Level, cfg.Log.Format)

		conn, err := db.InitDB(cfg.DSN())
		if err != nil {
			return fmt.Errorf("init sqlite: %w", err)
		}
		defer conn.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := db.Reset(ctx, conn); err != nil {
			return err
		}

		services := service.NewService(repository.NewRepository(conn), service.Options{
			Secret:     cfg.Auth.Secret,
			TokenTTL:   cfg.Auth.TokenTTL,
			LikeBypass: cfg.Policy.LikeBypass,
			Publisher:  mq.Nop{},
			Log:        log,
		})
		users, blogs, err := seed(ctx, services)
		if err != nil {
			return err
		}
		log.Infow("database seeded", "users", users, "blogs", blogs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seed creates the demo accounts and their blogs through the services so
// ownership lists and activity events are populated the same way the API does.
func seed(ctx context.Context, services *service.Service) (int, int, error) {
	created := make(map[string]models.User, len(seedUsers))
	for _, nu := range seedUsers {
		u, err := services.CreateUser(ctx, nu)
		if err != nil {
			return 0, 0, fmt.Errorf("seed user %s: %w", nu.Username, err)
		}
		created[u.Username] = u
	}

	blogs := 0
	for _, nu := range seedUsers {
		who := service.Authenticated(created[nu.Username])
		for _, nb := range seedBlogs[nu.Username] {
			if _, err := services.CreateBlog(ctx, who, nb); err != nil {
				return 0, 0, fmt.Errorf("seed blog %q: %w", nb.Title, err)
			}
			blogs++
		}
	}
	return len(created), blogs, nil
}
