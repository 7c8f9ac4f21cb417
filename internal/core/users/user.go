package users

// User represents a post author as stored in the relational store
// Contact, address and company fields only exist because the demo dataset carries them
type User struct {
	CompanyID *int64  `json:"companyId,omitempty" db:"company_id"`
	Address   Address `json:"address" db:"-"`
	Name      string  `json:"name" db:"name"`
	Username  string  `json:"username,omitempty" db:"username"`
	Email     string  `json:"email,omitempty" db:"email"`
	Phone     string  `json:"phone,omitempty" db:"phone"`
	Website   string  `json:"website,omitempty" db:"website"`
	ID        int64   `json:"id" db:"id"`
}

// Address is flattened into the users table (street, suite, city, zipcode, lat, lng)
type Address struct {
	Street  string `json:"street,omitempty" db:"street"`
	Suite   string `json:"suite,omitempty" db:"suite"`
	City    string `json:"city,omitempty" db:"city"`
	Zipcode string `json:"zipcode,omitempty" db:"zipcode"`
	Lat     string `json:"lat,omitempty" db:"lat"`
	Lng     string `json:"lng,omitempty" db:"lng"`
}

// Company is the employer record referenced by users, unique by name
type Company struct {
	Name        string `json:"name" db:"name"`
	CatchPhrase string `json:"catchPhrase" db:"catch_phrase"`
	BS          string `json:"bs" db:"bs"`
	ID          int64  `json:"id" db:"id"`
}

// UserSummary is the public projection returned by the user endpoints
type UserSummary struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	ID       int64  `json:"id"`
}

// Summary projects a user to its public fields
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
	}
}

// SearchLimit caps the number of users a search returns
const SearchLimit = 5
