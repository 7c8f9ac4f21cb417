package seed

import (
	"Postboard/internal/core/posts"
	"Postboard/internal/core/users"
)

// APIUser matches the JSONPlaceholder /users payload
type APIUser struct {
	Address  APIAddress `json:"address"`
	Company  APICompany `json:"company"`
	Name     string     `json:"name"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Website  string     `json:"website"`
	ID       int64      `json:"id"`
}

// APIAddress is the nested address object of an APIUser
type APIAddress struct {
	Geo     APIGeo `json:"geo"`
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
}

// APIGeo holds coordinates as strings, exactly as the API sends them
type APIGeo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// APICompany is the nested company object of an APIUser
type APICompany struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// APIPost matches the JSONPlaceholder /posts payload
type APIPost struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
}

// UserRecord is a user ready for insertion plus the name of its company,
// which is resolved to a company id inside the import transaction
type UserRecord struct {
	User        *users.User
	CompanyName string
}

// Dataset is everything one seeding run writes
type Dataset struct {
	Companies []*users.Company
	Users     []*UserRecord
	Posts     []*posts.Post
}

// ImportStats reports how many rows an import inserted
type ImportStats struct {
	Companies int
	Users     int
	Posts     int
}
