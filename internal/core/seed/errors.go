package seed

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when the API returned no users or no posts
var ErrEmptyDataset = errors.New("demo API returned an empty dataset")

// FetchError is returned when the demo API answers with a non-2xx status
type FetchError struct {
	URL        string
	Status     string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %d %s", e.URL, e.StatusCode, e.Status)
}

// IsFetchError checks if error is a fetch error
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// OrphanPostError is returned when a post references a user that is not in the dataset
type OrphanPostError struct {
	PostID int64
	UserID int64
}

func (e *OrphanPostError) Error() string {
	return fmt.Sprintf("post %d references unknown user %d", e.PostID, e.UserID)
}
