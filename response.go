package bloglist

// Blog is the outward representation of a blog with its owner populated.
type Blog struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	User   *Owner `json:"user"`
}

// Owner is the public part of the user who created a blog.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// User is the outward representation of a user. It never carries the
// password hash.
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Blogs    []BlogRef `json:"blogs"`
}

// BlogRef is an entry of User.Blogs.
type BlogRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
