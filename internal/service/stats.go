package service

import (
	"context"

	"bloglist/internal/models"
	"bloglist/internal/repository"
)

type StatsService struct {
	blogs repository.Blogs
}

func NewStatsService(blogs repository.Blogs) *StatsService {
	return &StatsService{blogs: blogs}
}

// GetStats aggregates over every stored blog in insertion order.
func (s *StatsService) GetStats(ctx context.Context) (models.Stats, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	return Summarize(blogs), nil
}

func Summarize(blogs []models.Blog) models.Stats {
	return models.Stats{
		Blogs:        len(blogs),
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}
}

func TotalLikes(blogs []models.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the most liked blog; ties keep the earliest. Nil when empty.
func FavoriteBlog(blogs []models.Blog) *models.FavoriteBlog {
	if len(blogs) == 0 {
		return nil
	}
	best := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > best.Likes {
			best = b
		}
	}
	return &models.FavoriteBlog{Title: best.Title, Author: best.Author, Likes: best.Likes}
}

// MostBlogs returns the author with the most blogs.
// Authors rank in first-appearance order, so ties keep the earlier one.
func MostBlogs(blogs []models.Blog) *models.AuthorBlogs {
	authors, counts := tally(blogs, func(models.Blog) int { return 1 })
	if len(authors) == 0 {
		return nil
	}
	top := authors[0]
	for _, a := range authors[1:] {
		if counts[a] > counts[top] {
			top = a
		}
	}
	return &models.AuthorBlogs{Author: top, Blogs: counts[top]}
}

// MostLikes returns the author with the highest summed likes. Same tie rule as MostBlogs.
func MostLikes(blogs []models.Blog) *models.AuthorLikes {
	authors, likes := tally(blogs, func(b models.Blog) int { return b.Likes })
	if len(authors) == 0 {
		return nil
	}
	top := authors[0]
	for _, a := range authors[1:] {
		if likes[a] > likes[top] {
			top = a
		}
	}
	return &models.AuthorLikes{Author: top, Likes: likes[top]}
}

// tally sums weight per author and returns authors in first-appearance order.
func tally(blogs []models.Blog, weight func(models.Blog) int) ([]string, map[string]int) {
	order := make([]string, 0, len(blogs))
	sums := make(map[string]int, len(blogs))
	for _, b := range blogs {
		if _, seen := sums[b.Author]; !seen {
			order = append(order, b.Author)
		}
		sums[b.Author] += weight(b)
	}
	return order, sums
}
