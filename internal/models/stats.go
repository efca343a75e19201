package models

// Stats summarizes all stored blogs.
type Stats struct {
	Blogs        int           `json:"blogs"`
	TotalLikes   int           `json:"totalLikes"`
	FavoriteBlog *FavoriteBlog `json:"favoriteBlog"`
	MostBlogs    *AuthorBlogs  `json:"mostBlogs"`
	MostLikes    *AuthorLikes  `json:"mostLikes"`
}

type FavoriteBlog struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}
